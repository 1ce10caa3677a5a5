package service

import (
	"fmt"
	"log"
	"time"

	"spotmarket/internal/db"
	"spotmarket/internal/entities"
)

// Notifier delivers reservation status updates to the booking user.
// Failures are logged and never fail the triggering request.
type Notifier interface {
	NotifyReservationStatus(user *db.User, spot *db.ParkingSpot, reservation *db.Reservation)
}

type SenderService struct{}

func NewSenderService() *SenderService {
	return &SenderService{}
}

func (s *SenderService) NotifyReservationStatus(user *db.User, spot *db.ParkingSpot, reservation *db.Reservation) {
	data := entities.ReservationEmailData{
		UserName:           user.Name,
		SpotTitle:          spot.Title,
		SpotAddress:        spot.Address,
		Status:             reservation.Status,
		StartTimeFormatted: reservation.StartTime.Format("02 Jan 2006 15:04 MST"),
		EndTimeFormatted:   reservation.EndTime.Format("02 Jan 2006 15:04 MST"),
		TotalPrice:         reservation.TotalPrice,
		CurrentYear:        time.Now().Year(),
	}

	subject := fmt.Sprintf("Your parking reservation is %s - %s", data.Status, data.SpotTitle)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour reservation at %s is %s.\n\n"+
			"Reservation details:\n"+
			"Spot: %s\n"+
			"Address: %s\n"+
			"Check-in: %s\n"+
			"Check-out: %s\n"+
			"Total: $%.2f\n\n"+
			"Thank you for parking with SpotMarket.",
		data.UserName, data.SpotTitle, data.Status,
		data.SpotTitle, data.SpotAddress,
		data.StartTimeFormatted, data.EndTimeFormatted, data.TotalPrice,
	)

	go func(toEmail, toName, subject, body string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subject, body, ""); err != nil {
			log.Printf("Failed to send reservation email for %s: %v", reservation.ID, err)
		}
	}(user.Email, user.Name, subject, body)

	if user.Phone != "" {
		sms := fmt.Sprintf("SpotMarket: your reservation at %s is %s. Check-in: %s. Details in your email.",
			data.SpotTitle, data.Status, reservation.StartTime.Format("02/01 15:04"))
		go func(phone, sms string) {
			if err := SendSMS(phone, sms); err != nil {
				log.Printf("Failed to send reservation SMS for %s: %v", reservation.ID, err)
			}
		}(user.Phone, sms)
	}
}

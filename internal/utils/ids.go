package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const (
	reservationIDMin int64 = 1_000_000_000_000  // 1e12
	reservationIDMax int64 = 10_000_000_000_000 // 1e13, exclusive
)

// NewReservationID draws a 13 digit identifier uniformly from [1e12, 1e13),
// the same range the booking form uses when it generates ids in the browser.
func NewReservationID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(reservationIDMax-reservationIDMin))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(reservationIDMin+n.Int64(), 10), nil
}

package order

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// otpDigits is the length of the delivery confirmation code.
const otpDigits = 4

// mintDeliveryOtp generates a random 4-digit code, zero-padded, using
// crypto/rand. The code is stored on the order when it goes out for delivery
// and must be echoed back to confirm delivery.
func mintDeliveryOtp() (string, error) {
	bound := big.NewInt(10_000)
	n, err := rand.Int(rand.Reader, bound)
	if err != nil {
		return "", fmt.Errorf("minting delivery otp: %w", err)
	}
	return fmt.Sprintf("%0*d", otpDigits, n), nil
}

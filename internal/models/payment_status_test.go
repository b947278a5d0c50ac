package models

import "testing"

func TestPaymentStatusFor(t *testing.T) {
	cases := []struct {
		name  string
		paid  float64
		total float64
		want  PaymentStatus
	}{
		{"hiç ödenmemiş", 0, 1000, PaymentStatusPending},
		{"negatif ödeme pending sayılır", -10, 1000, PaymentStatusPending},
		{"kısmi ödeme", 500, 1000, PaymentStatusPartial},
		{"tam ödeme", 1000, 1000, PaymentStatusPaid},
		{"sıfır tutarlı işlem", 0, 0, PaymentStatusPending},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PaymentStatusFor(tc.paid, tc.total); got != tc.want {
				t.Errorf("PaymentStatusFor(%v, %v) = %s, %s bekleniyordu", tc.paid, tc.total, got, tc.want)
			}
		})
	}
}

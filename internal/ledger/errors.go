package ledger

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError - Geçersiz girdi veya iş kuralı ihlali (örn. yetersiz stok)
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError - Referans verilen kayıt yok
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s bulunamadı (id=%d)", e.Entity, e.ID)
}

// ConcurrencyConflict - Stok satırı okuma ile yazma arasında değişti.
// Poster bir kez kendisi yeniden dener, ikinci seferde çağırana döner.
type ConcurrencyConflict struct {
	Message string
}

func (e *ConcurrencyConflict) Error() string { return e.Message }

// HTTPStatus - Ledger hatasını HTTP durum koduna çevirir.
// Handler katmanı mesajı fiber.NewError ile sarar.
func HTTPStatus(err error) (int, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, true
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound, true
	}
	var cc *ConcurrencyConflict
	if errors.As(err, &cc) {
		return http.StatusConflict, true
	}
	return 0, false
}

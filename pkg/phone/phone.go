package phone

import (
	"errors"
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

// ErrInvalidPhone возвращается, когда строка не распознается как телефонный номер
var ErrInvalidPhone = errors.New("phone: invalid phone number")

// Normalizer приводит сырые телефонные номера к каноническому
// международному формату E.164 ("+79161234567").
// Канонический номер используется как ключ дедупликации клиентов.
type Normalizer struct {
	defaultRegion string
}

// NewNormalizer создает нормализатор с регионом по умолчанию (ISO 3166-1,
// например "RU") для номеров без международного префикса
func NewNormalizer(defaultRegion string) *Normalizer {
	return &Normalizer{defaultRegion: defaultRegion}
}

// Normalize парсит сырой номер и возвращает каноническую форму E.164
func (n *Normalizer) Normalize(raw string) (string, error) {
	num, err := phonenumbers.Parse(raw, n.defaultRegion)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPhone, err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

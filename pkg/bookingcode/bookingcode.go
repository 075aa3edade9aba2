// Package bookingcode генерирует короткие публичные коды бронирований.
//
// Код состоит из 8 символов алфавита A-Z0-9 (36^8 комбинаций) и не связан
// с внутренним ID бронирования. Уникальность кода гарантирует хранилище
// (уникальный индекс), генератор отвечает только за равномерное распределение.
package bookingcode

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

const (
	// Alphabet допустимые символы кода
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// Length длина кода
	Length = 8

	// rejectThreshold наибольшее кратное len(Alphabet), не превышающее 256.
	// Байты >= порога отбрасываются, чтобы не было смещения распределения
	rejectThreshold = 256 - 256%len(Alphabet)
)

// ErrRandomSource возвращается, когда источник случайности недоступен
var ErrRandomSource = errors.New("bookingcode: random source failure")

// Generator генератор кодов бронирования
type Generator struct {
	random io.Reader
}

// New создает генератор на основе crypto/rand
func New() *Generator {
	return &Generator{random: rand.Reader}
}

// NewWithReader создает генератор с заданным источником байтов (для тестов)
func NewWithReader(r io.Reader) *Generator {
	return &Generator{random: r}
}

// Generate возвращает новый случайный код
func (g *Generator) Generate() (string, error) {
	code := make([]byte, 0, Length)
	buf := make([]byte, Length*2)

	for len(code) < Length {
		if _, err := io.ReadFull(g.random, buf); err != nil {
			return "", fmt.Errorf("%w: %v", ErrRandomSource, err)
		}
		for _, b := range buf {
			if int(b) >= rejectThreshold {
				continue
			}
			code = append(code, Alphabet[int(b)%len(Alphabet)])
			if len(code) == Length {
				break
			}
		}
	}

	return string(code), nil
}

// Valid проверяет, что строка является корректным кодом бронирования
func Valid(code string) bool {
	if len(code) != Length {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

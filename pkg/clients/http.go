package clients

import (
	"net/http"
	"time"
)

// NewHTTPClient возвращает HTTP-клиент с ограниченным таймаутом.
// Сетевые сбои должны всплывать ошибкой, а не висеть бесконечно.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
	}
}

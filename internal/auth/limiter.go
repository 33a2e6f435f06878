package auth

import "golang.org/x/time/rate"

// LoginLimiter ограничивает частоту попыток входа.
type LoginLimiter struct {
	limiter *rate.Limiter
}

// NewLoginLimiter создаёт лимитер на rps попыток в секунду со всплеском burst.
func NewLoginLimiter(rps float64, burst int) *LoginLimiter {
	return &LoginLimiter{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Allow возвращает true, если попытку входа можно пропустить.
func (l *LoginLimiter) Allow() bool {
	return l.limiter.Allow()
}

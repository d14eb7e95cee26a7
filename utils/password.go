package utils

import "github.com/matthewhartstonge/argon2"

var hashConfig = argon2.DefaultConfig()

// HashPassword produces an encoded argon2id hash suitable for storage.
func HashPassword(password string) (string, error) {
	encoded, err := hashConfig.HashEncoded([]byte(password))
	return string(encoded), err
}

// VerifyPassword reports whether password matches the stored encoded hash.
func VerifyPassword(encodedHash, password string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}

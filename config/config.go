package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func InitConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using defaults")
		return
	}

	log.Println("Successfully loaded environment variables")
}

func GetEnvVariable(v string) (string, error) {
	if v == "" {
		return "", fmt.Errorf("input param empty")
	}
	b := os.Getenv(v)
	if b == "" {
		return "", fmt.Errorf("failed to get variable for %s", v)
	}

	return b, nil
}

// StringOr returns the environment variable v, or fallback when unset.
func StringOr(v, fallback string) string {
	s, err := GetEnvVariable(v)
	if err != nil {
		return fallback
	}
	return s
}

// IntOr returns the environment variable v parsed as an int, or fallback
// when unset or unparseable.
func IntOr(v string, fallback int) int {
	s, err := GetEnvVariable(v)
	if err != nil {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("config: %s=%q is not an int, using %d", v, s, fallback)
		return fallback
	}
	return n
}

package dsn

import (
	"fmt"
	"os"
)

// Build собирает DSN строку для postgres
func Build(host, port, user, pass, dbname string) string {
	if host == "" {
		return ""
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, pass, dbname)
}

func FromEnvE2E() string {
	return Build(
		os.Getenv("DB_HOST_TEST"),
		os.Getenv("DB_PORT_TEST"),
		os.Getenv("DB_USER_TEST"),
		os.Getenv("DB_PASS_TEST"),
		os.Getenv("DB_NAME_TEST"),
	)
}

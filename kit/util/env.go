package util

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads the file into the process env without overriding variables already set.
// A missing file is not an error.
func LoadEnvFile(path string) {
	_ = godotenv.Load(path)
}

func GetRequireEnvString(env string) string {
	envString := os.Getenv(env)
	if envString == "" {
		panic("no set env: " + env)
	}
	return envString
}

func GetEnvString(env, fallback string) string {
	envString := os.Getenv(env)
	if envString == "" {
		return fallback
	}
	return envString
}

func GetEnvBool(env string, fallback bool) bool {
	envString := os.Getenv(env)
	envBool, err := strconv.ParseBool(envString)
	if err != nil {
		return fallback
	}
	return envBool
}

func GetEnvInt(env string, fallback int) int {
	envString := os.Getenv(env)
	envInt, err := strconv.Atoi(envString)
	if err != nil {
		return fallback
	}
	return envInt
}

func GetEnvSeconds(env string, fallback time.Duration) time.Duration {
	envString := os.Getenv(env)
	envInt, err := strconv.Atoi(envString)
	if err != nil || envInt <= 0 {
		return fallback
	}
	return time.Duration(envInt) * time.Second
}

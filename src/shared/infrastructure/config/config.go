package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load carga las variables de entorno desde .env si existe.
// En deployment las variables vienen del entorno y el .env no hace falta.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No se encontró archivo .env, usando variables del sistema")
	}
}

// GetEnv obtiene una variable de entorno o devuelve un valor por defecto
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt obtiene una variable de entorno numérica o el valor por defecto
func GetEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("⚠️  Valor inválido para %s (%q), usando default %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

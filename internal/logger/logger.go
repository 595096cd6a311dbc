package logger

import (
	"fmt"
	"time"

	"github.com/fatih/color"
)

// Info log une information générale (bleu)
func Info(message string, args ...interface{}) {
	timestamp := time.Now().Format("15:04:05")
	color.Blue("[%s] %s", timestamp, fmt.Sprintf(message, args...))
}

// Success log un succès (vert)
func Success(message string, args ...interface{}) {
	timestamp := time.Now().Format("15:04:05")
	color.Green("[%s] ✓ %s", timestamp, fmt.Sprintf(message, args...))
}

// Warning log un avertissement (jaune)
func Warning(message string, args ...interface{}) {
	timestamp := time.Now().Format("15:04:05")
	color.Yellow("[%s] ⚠ %s", timestamp, fmt.Sprintf(message, args...))
}

// Error log une erreur (rouge)
func Error(message string, args ...interface{}) {
	timestamp := time.Now().Format("15:04:05")
	color.Red("[%s] ✗ %s", timestamp, fmt.Sprintf(message, args...))
}

// Request log une requête HTTP avec durée
func Request(method, path string, statusCode int, duration time.Duration) {
	timestamp := time.Now().Format("15:04:05")

	printer := color.New(color.FgGreen)
	if statusCode >= 500 {
		printer = color.New(color.FgRed)
	} else if statusCode >= 400 {
		printer = color.New(color.FgYellow)
	} else if statusCode >= 300 {
		printer = color.New(color.FgCyan)
	}

	durationStr := ""
	if duration < time.Millisecond {
		durationStr = fmt.Sprintf("%.0fµs", float64(duration.Microseconds()))
	} else if duration < time.Second {
		durationStr = fmt.Sprintf("%.0fms", float64(duration.Milliseconds()))
	} else {
		durationStr = fmt.Sprintf("%.2fs", duration.Seconds())
	}

	printer.Printf("[%s] %-6s %-40s [%d] (%s)\n", timestamp, method, path, statusCode, durationStr)
}

// Debug log un message de debug - utilisé seulement en développement
func Debug(message string, args ...interface{}) {
	timestamp := time.Now().Format("15:04:05")
	color.White("[%s] DEBUG: %s", timestamp, fmt.Sprintf(message, args...))
}

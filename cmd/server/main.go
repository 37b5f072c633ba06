package main

import (
	"os"

	"linguachat/backend/internal/app"
)

// @title           LinguaChat API
// @version         1.0
// @description     Backend for the multilingual chat assistant.
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}

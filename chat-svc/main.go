package main

import (
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/config"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}

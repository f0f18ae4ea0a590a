package main

import (
	"flag"
	"time"

	"cefetid-backend/lib/configutil"
	"cefetid-backend/lib/scrapers/cefetaluno"
	"cefetid-backend/lib/serviceutil"
	"cefetid-backend/services/studentportal"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type ScraperConfig struct {
	BaseUrl          string `json:"base_url"`
	CpaOrigin        string `json:"cpa_origin"`
	TimeoutSeconds   int    `json:"timeout_seconds"`
	MaxLoginAttempts int    `json:"max_login_attempts"`
	RedirectHops     int    `json:"redirect_hops"`
}

type Config struct {
	Port           int           `json:"port"`
	AllowedOrigins []string      `json:"allowed_origins"`
	Scraper        ScraperConfig `json:"scraper"`
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	InitTelemetry(ctx, *verbose)

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}

	if !*verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	studentportal.NewService(studentportal.Options{
		Scraper: cefetaluno.ClientOptions{
			BaseUrl:          cfg.Scraper.BaseUrl,
			CpaOrigin:        cfg.Scraper.CpaOrigin,
			Timeout:          time.Duration(cfg.Scraper.TimeoutSeconds) * time.Second,
			MaxLoginAttempts: cfg.Scraper.MaxLoginAttempts,
			RedirectHops:     cfg.Scraper.RedirectHops,
		},
	}).Register(router)

	serviceutil.StartHttpServer(ctx, cfg.Port, router)
}

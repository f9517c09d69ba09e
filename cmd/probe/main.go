// Command probe simulates an ESP8266 fan-control probe: it polls the
// shared threshold and posts a reading every interval, spinning the
// fan up when the simulated temperature crosses the threshold.
package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	baseTemperature = 24.0
	fanSpeedIdle    = 20.0
	fanSpeedHigh    = 85.0
)

type configResponse struct {
	Threshold float64 `json:"threshold"`
}

type readingPayload struct {
	Temperature float64 `json:"temperature"`
	FanSpeed    float64 `json:"fanSpeed"`
}

func main() {
	server := flag.String("server", "http://localhost:8081", "Base URL of the fan monitor backend")
	interval := flag.Duration("interval", 5*time.Second, "Delay between readings")
	flag.Parse()

	infoLog := log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stdout, "ERROR: ", log.Ldate|log.Ltime)

	client := resty.New().
		SetBaseURL(*server).
		SetTimeout(10 * time.Second).
		SetRetryCount(2)

	threshold := fetchThreshold(client, errorLog)
	infoLog.Printf("Probe started against %s, threshold %.1f", *server, threshold)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for range ticker.C {
		threshold = fetchThreshold(client, errorLog)

		temperature := baseTemperature + rand.Float64()*12
		fanSpeed := fanSpeedIdle
		if temperature > threshold {
			fanSpeed = fanSpeedHigh
		}

		resp, err := client.R().
			SetBody(readingPayload{Temperature: temperature, FanSpeed: fanSpeed}).
			Post("/api/esp8266/data")
		if err != nil {
			errorLog.Printf("posting reading: %v", err)
			continue
		}
		if resp.IsError() {
			errorLog.Printf("posting reading: server answered %s: %s", resp.Status(), resp.Body())
			continue
		}
		infoLog.Printf("Reported temperature %.1f, fan speed %.0f", temperature, fanSpeed)
	}
}

// fetchThreshold polls the device-facing config endpoint. On failure
// the probe keeps the default rather than stopping; the backend owns
// the record, the probe only mirrors it.
func fetchThreshold(client *resty.Client, errorLog *log.Logger) float64 {
	var cfg configResponse
	resp, err := client.R().SetResult(&cfg).Get("/api/esp8266/config")
	if err != nil {
		errorLog.Printf("fetching config: %v", err)
		return 30
	}
	if resp.IsError() {
		errorLog.Printf("fetching config: server answered %s", resp.Status())
		return 30
	}
	return cfg.Threshold
}

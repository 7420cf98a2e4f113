package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/MerabQardava/EpamGymProject/internal/security"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	targetHost = "http://localhost:8081" // workload-сервис
	rps        = 5
	duration   = 3 * time.Minute
	jwtSecret  = "dev-secret-change-me"
)

type UpdateWorkingHoursRequest struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	IsActive         bool   `json:"isActive"`
	Date             string `json:"date"`
	TrainingDuration int    `json:"trainingDuration"`
}

type GetWorkingHoursRequest struct {
	YearNumber  int `json:"yearNumber"`
	MonthNumber int `json:"monthNumber"`
}

var (
	trainers []string
	token    string
	httpc    = &http.Client{Timeout: 10 * time.Second}
)

func postJSON(url string, body any) (int, error) {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := httpc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

// Seed
func seedData() error {
	log.Println("Seeding: creating trainers with initial hours...")

	for i := 1; i <= 50; i++ {
		username := fmt.Sprintf("trainer-%02d", i)
		body := UpdateWorkingHoursRequest{
			FirstName:        fmt.Sprintf("First_%d", i),
			LastName:         fmt.Sprintf("Last_%d", i),
			IsActive:         true,
			Date:             "2025-10-01",
			TrainingDuration: 10,
		}

		status, err := postJSON(fmt.Sprintf("%s/trainer/%s/ADD", targetHost, username), body)
		if err != nil {
			return err
		}
		if status >= 400 {
			log.Printf("WARN trainer ADD returned %d\n", status)
		}

		trainers = append(trainers, username)
		time.Sleep(20 * time.Millisecond)
	}

	log.Printf("Seed completed: trainers=%d\n", len(trainers))
	return nil
}

// Targeter
func makeTargeter() vegeta.Targeter {
	header := map[string][]string{
		"Content-Type":  {"application/json"},
		"Authorization": {"Bearer " + token},
	}

	return func(t *vegeta.Target) error {
		r := rand.Float64()
		trainer := trainers[rand.Intn(len(trainers))]

		// 70% запрос итога часов
		if r < 0.70 {
			body, _ := json.Marshal(GetWorkingHoursRequest{YearNumber: 2025, MonthNumber: 10})
			t.Method = http.MethodPost
			t.URL = fmt.Sprintf("%s/trainer/%s", targetHost, trainer)
			t.Body = body
			t.Header = header
			return nil
		}

		// 25% ADD
		if r < 0.95 {
			body, _ := json.Marshal(UpdateWorkingHoursRequest{
				FirstName:        "Load",
				LastName:         "Trainer",
				IsActive:         true,
				Date:             "2025-10-01",
				TrainingDuration: 1,
			})
			t.Method = http.MethodPost
			t.URL = fmt.Sprintf("%s/trainer/%s/ADD", targetHost, trainer)
			t.Body = body
			t.Header = header
			return nil
		}

		// 5% REMOVE
		body, _ := json.Marshal(UpdateWorkingHoursRequest{
			FirstName:        "Load",
			LastName:         "Trainer",
			IsActive:         true,
			Date:             "2025-10-01",
			TrainingDuration: 1,
		})
		t.Method = http.MethodPost
		t.URL = fmt.Sprintf("%s/trainer/%s/REMOVE", targetHost, trainer)
		t.Body = body
		t.Header = header
		return nil
	}
}

// Attack
func runAttack() {
	rate := vegeta.Rate{Freq: rps, Per: time.Second}
	attacker := vegeta.NewAttacker()
	targeter := makeTargeter()

	var metrics vegeta.Metrics

	log.Printf("Starting attack: %s for %s", targetHost, duration)
	for res := range attacker.Attack(targeter, rate, duration, "load-test") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Println("=== Results ===")
	fmt.Printf("Requests: %d\n", metrics.Requests)
	fmt.Printf("Success rate: %.4f%%\n", metrics.Success*100)
	fmt.Printf("Latency mean: %s\n", metrics.Latencies.Mean)
	fmt.Printf("Latency P95: %s\n", metrics.Latencies.P95)
	fmt.Printf("Latency P99: %s\n", metrics.Latencies.P99)
}

func main() {
	rand.Seed(time.Now().UnixNano())

	var err error
	token, err = security.NewJWTService(jwtSecret).GenerateToken("load-tester")
	if err != nil {
		log.Fatalf("Token generation failed: %v", err)
	}

	if err := seedData(); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	runAttack()
}

// Command seed_demo loads a small demo dataset into a running server and
// triggers a recalculation, so the dashboard and average endpoints have
// something to show.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

type seedSubject struct {
	Label     string
	Behaviors []seedBehavior
}

type seedBehavior struct {
	Name        string
	Description string
	Scores      []seedScore
}

type seedScore struct {
	Date  string
	Score int
	Notes string
}

var demo = []seedSubject{
	{
		Label: "Rex",
		Behaviors: []seedBehavior{
			{
				Name:        "Recall",
				Description: "Comes when called at the park",
				Scores: []seedScore{
					{Date: "2026-08-03", Score: 6, Notes: "distracted by other dogs"},
					{Date: "2026-08-04", Score: 7},
					{Date: "2026-08-10", Score: 8, Notes: "long leash drill"},
					{Date: "2026-08-17", Score: 9},
				},
			},
			{
				Name:   "Loose-leash walking",
				Scores: []seedScore{
					{Date: "2026-08-03", Score: 4, Notes: "pulled the whole way"},
					{Date: "2026-08-10", Score: 5},
					{Date: "2026-08-17", Score: 7},
				},
			},
		},
	},
	{
		Label: "Milo",
		Behaviors: []seedBehavior{
			{
				Name:   "Litter box use",
				Scores: []seedScore{
					{Date: "2026-08-05", Score: 10},
					{Date: "2026-08-12", Score: 9},
				},
			},
		},
	},
}

func main() {
	var (
		base    string
		timeout time.Duration
	)
	flag.StringVar(&base, "base", "http://localhost:8080/api/v1", "API base URL")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	client := &http.Client{Timeout: timeout}
	base = strings.TrimRight(base, "/")

	for _, subject := range demo {
		subjectID, err := createSubject(client, base, subject.Label)
		if err != nil {
			log.Fatalf("create subject %q: %v", subject.Label, err)
		}
		for _, behavior := range subject.Behaviors {
			definitionID, err := createDefinition(client, base, subjectID, behavior)
			if err != nil {
				log.Fatalf("create definition %q: %v", behavior.Name, err)
			}
			for _, score := range behavior.Scores {
				if err := logScore(client, base, definitionID, score); err != nil {
					log.Fatalf("log score for %q on %s: %v", behavior.Name, score.Date, err)
				}
			}
		}
		fmt.Printf("seeded %s\n", subject.Label)
	}

	if err := post(client, base+"/averages/recalculate", nil, nil); err != nil {
		log.Fatalf("recalculate averages: %v", err)
	}
	fmt.Println("averages recalculated")
}

func createSubject(client *http.Client, base, label string) (int, error) {
	var out struct {
		Data struct {
			SubjectID int `json:"subject_id"`
		} `json:"data"`
	}
	err := post(client, base+"/subjects", map[string]interface{}{"label": label}, &out)
	if err != nil {
		return 0, err
	}
	return out.Data.SubjectID, nil
}

func createDefinition(client *http.Client, base string, subjectID int, behavior seedBehavior) (int, error) {
	var out struct {
		Data struct {
			DefinitionID int `json:"definition_id"`
		} `json:"data"`
	}
	payload := map[string]interface{}{
		"subject_id":  subjectID,
		"name":        behavior.Name,
		"description": behavior.Description,
	}
	err := post(client, base+"/definitions", payload, &out)
	if err != nil {
		return 0, err
	}
	return out.Data.DefinitionID, nil
}

func logScore(client *http.Client, base string, definitionID int, score seedScore) error {
	payload := map[string]interface{}{
		"definition_id": definitionID,
		"date":          score.Date,
		"score":         score.Score,
		"notes":         score.Notes,
	}
	return post(client, base+"/scores", payload, nil)
}

func post(client *http.Client, url string, payload interface{}, out interface{}) error {
	var body *bytes.Buffer
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(encoded)
	} else {
		body = bytes.NewBuffer(nil)
	}

	resp, err := client.Post(url, "application/json", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s returned %d", url, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

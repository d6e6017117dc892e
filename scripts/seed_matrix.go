// seed_matrix.go loads a decision matrix from YAML and walks it through a
// Matrix session via the API, printing the final ranking.
//
// Usage:
//
//	go run scripts/seed_matrix.go -file matrix.yaml -api http://localhost:8700
//
// File format:
//
//	criteria:
//	  - {name: Cost, weight: 60}
//	  - {name: Quality, weight: 40}
//	alternatives: [A, B]
//	ratings:
//	  A: {Cost: 3, Quality: 5}
//	  B: {Cost: 5, Quality: 2}
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Criteria []struct {
		Name   string `yaml:"name"`
		Weight int    `yaml:"weight"`
	} `yaml:"criteria"`
	Alternatives []string                  `yaml:"alternatives"`
	Ratings      map[string]map[string]int `yaml:"ratings"`
}

type session struct {
	ID       string `json:"id"`
	Stage    string `json:"stage"`
	Criteria []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"criteria"`
	Alternatives []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"alternatives"`
	Results []struct {
		AlternativeName string  `json:"alternative_name"`
		TotalScore      float64 `json:"total_score"`
		Rank            int     `json:"rank"`
	} `json:"results"`
}

type mutation struct {
	Applied bool    `json:"applied"`
	Session session `json:"session"`
}

func main() {
	filePath := flag.String("file", "matrix.yaml", "path to matrix YAML file")
	apiURL := flag.String("api", "http://localhost:8700", "Matrix API base URL")
	dryRun := flag.Bool("dry-run", false, "print the matrix without posting")
	flag.Parse()

	data, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("read %s: %v", *filePath, err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		log.Fatalf("parse %s: %v", *filePath, err)
	}
	log.Printf("parsed %d criteria, %d alternatives from %s", len(seed.Criteria), len(seed.Alternatives), *filePath)

	if *dryRun {
		for _, alt := range seed.Alternatives {
			for _, c := range seed.Criteria {
				fmt.Printf("%s / %s (weight %d): %d\n", alt, c.Name, c.Weight, seed.Ratings[alt][c.Name])
			}
		}
		return
	}

	c := &client{base: *apiURL + "/api/v1", http: &http.Client{}}

	var sess session
	c.must("POST", "/sessions", nil, &sess)
	base := "/sessions/" + sess.ID
	log.Printf("session %s created", sess.ID)

	var m mutation
	for _, crit := range seed.Criteria {
		c.must("POST", base+"/criteria", map[string]interface{}{"name": crit.Name, "weight": crit.Weight}, &m)
		if !m.Applied {
			log.Printf("criterion %q not applied", crit.Name)
		}
	}
	c.advance(base)

	for _, alt := range seed.Alternatives {
		c.must("POST", base+"/alternatives", map[string]string{"name": alt}, &m)
		if !m.Applied {
			log.Printf("alternative %q not applied", alt)
		}
	}
	sess = c.advance(base)
	for _, alt := range sess.Alternatives {
		for _, crit := range sess.Criteria {
			v, ok := seed.Ratings[alt.Name][crit.Name]
			if !ok {
				continue
			}
			c.must("PUT", base+"/ratings", map[string]interface{}{
				"criterion_id": crit.ID, "alternative_id": alt.ID, "value": v,
			}, &m)
			if !m.Applied {
				log.Printf("rating %s/%s=%d not applied", alt.Name, crit.Name, v)
			}
		}
	}
	sess = c.advance(base)

	for _, r := range sess.Results {
		fmt.Printf("#%d %s %.0f\n", r.Rank, r.AlternativeName, r.TotalScore)
	}
}

type client struct {
	base string
	http *http.Client
}

func (c *client) advance(base string) session {
	var sess session
	status := c.do("POST", base+"/advance", nil, &sess)
	if status == http.StatusUnprocessableEntity {
		log.Fatalf("advance rejected; see server response above")
	}
	log.Printf("stage: %s", sess.Stage)
	return sess
}

func (c *client) must(method, path string, body, out interface{}) {
	if status := c.do(method, path, body, out); status >= 300 {
		log.Fatalf("%s %s: status %d", method, path, status)
	}
}

func (c *client) do(method, path string, body, out interface{}) int {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, err := http.NewRequest(method, c.base+path, &buf)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		log.Printf("%s %s: %s", method, path, bytes.TrimSpace(raw))
		return resp.StatusCode
	}
	if out != nil {
		_ = json.Unmarshal(raw, out)
	}
	return resp.StatusCode
}

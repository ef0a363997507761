// Package seed loads customer fixtures into the local customer table.
package seed

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"

	"transferbff/internal/model"
	"transferbff/internal/repository"
)

// CustomerRecord is one entry of a customer seed feed.
type CustomerRecord struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
}

// Result counts what an Upsert did.
type Result struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// Load reads a seed feed from an http(s) URL or, failing that, a file path.
func Load(ctx context.Context, url, file string) ([]CustomerRecord, error) {
	switch {
	case url != "":
		return fetch(ctx, url)
	case file != "":
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("open seed file: %w", err)
		}
		defer f.Close()
		return Decode(f)
	default:
		return nil, stderrors.New("no seed source configured")
	}
}

func fetch(ctx context.Context, url string) ([]CustomerRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build seed request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seed feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("seed feed returned status code: %d", resp.StatusCode)
	}
	return Decode(resp.Body)
}

// Decode parses a JSON array of customer records.
func Decode(r io.Reader) ([]CustomerRecord, error) {
	var records []CustomerRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to parse seed JSON: %w", err)
	}
	return records, nil
}

// Upsert creates customers that are new by email and refreshes the names of existing ones.
// Records missing any field are skipped.
func Upsert(ctx context.Context, repo repository.CustomerRepository, records []CustomerRecord) (Result, error) {
	var res Result
	for _, rec := range records {
		name := strings.TrimSpace(rec.Name)
		surname := strings.TrimSpace(rec.Surname)
		email := strings.ToLower(strings.TrimSpace(rec.Email))
		if name == "" || surname == "" || email == "" {
			res.Skipped++
			continue
		}

		existing, err := repo.FindByEmail(ctx, email)
		if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
			return res, fmt.Errorf("error checking customer %s: %w", email, err)
		}

		if existing != nil {
			existing.Name = name
			existing.Surname = surname
			if err := repo.Update(ctx, existing); err != nil {
				return res, fmt.Errorf("error updating customer %s: %w", email, err)
			}
			res.Updated++
			continue
		}

		customer := &model.Customer{Name: name, Surname: surname, Email: email}
		if err := repo.Create(ctx, customer); err != nil {
			return res, fmt.Errorf("error creating customer %s: %w", email, err)
		}
		res.Created++
	}
	return res, nil
}

// TokenMinter signs bearer tokens for a customer.
type TokenMinter interface {
	GenerateAccessToken(customerID int64, email string) (string, error)
}

// IssueToken mints a bearer token for the stored customer with the given email.
func IssueToken(ctx context.Context, repo repository.CustomerRepository, minter TokenMinter, email string) (string, error) {
	customer, err := repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", fmt.Errorf("find customer %s: %w", email, err)
	}
	token, err := minter.GenerateAccessToken(customer.ID, customer.Email)
	if err != nil {
		return "", fmt.Errorf("sign token for %s: %w", email, err)
	}
	return token, nil
}

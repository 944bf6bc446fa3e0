package importer

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dicoslang/backoffice/internal/models"
	"github.com/dicoslang/backoffice/internal/services"
)

// Seed is the YAML fixture format loaded by `dicoctl seed`.
type Seed struct {
	Users       []SeedUser       `yaml:"users"`
	Words       []SeedWord       `yaml:"words"`
	Suggestions []SeedSuggestion `yaml:"suggestions"`
	Comments    []SeedComment    `yaml:"comments"`
}

type SeedUser struct {
	ID        string `yaml:"id"`
	Username  string `yaml:"pseudo"`
	FirstName string `yaml:"prenom"`
	BirthYear int    `yaml:"age"`
	City      string `yaml:"ville"`
	Email     string `yaml:"email"`
	Status    string `yaml:"status"`
	Role      string `yaml:"role"`
	// Password is hashed before storage; empty means no local login.
	Password string `yaml:"password"`
}

type SeedWord struct {
	ID         string   `yaml:"id"`
	Text       string   `yaml:"text"`
	Definition string   `yaml:"definition"`
	Example    string   `yaml:"exemple"`
	Origin     string   `yaml:"origine"`
	Status     string   `yaml:"status"`
	CreatedBy  string   `yaml:"createdBy"`
	Tags       []string `yaml:"tags"`
}

type SeedSuggestion struct {
	ID         string `yaml:"id"`
	UserID     string `yaml:"userId"`
	Text       string `yaml:"text"`
	Definition string `yaml:"definition"`
	Example    string `yaml:"exemple"`
	Origin     string `yaml:"origine"`
}

type SeedComment struct {
	ID     string `yaml:"id"`
	UserID string `yaml:"userId"`
	WordID string `yaml:"wordId"`
	Text   string `yaml:"text"`
}

// SeedResult counts the documents written per kind.
type SeedResult struct {
	Users       int
	Words       int
	Suggestions int
	Comments    int
	Skipped     int
}

// LoadSeed reads and parses a seed file.
func LoadSeed(path string) (*Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSeed(raw)
}

func ParseSeed(raw []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &seed, nil
}

// ApplySeed writes the fixture through the store accessors. Users and words
// with an id replace the stored document. Suggestions and comments whose id
// already exists are left alone so a seed can be re-run.
func ApplySeed(ctx context.Context, store *services.Store, seed *Seed) (*SeedResult, error) {
	result := &SeedResult{}

	for i, su := range seed.Users {
		u := &models.User{
			ID:        su.ID,
			Username:  su.Username,
			FirstName: su.FirstName,
			BirthYear: su.BirthYear,
			City:      su.City,
			Email:     su.Email,
			Status:    models.UserStatus(su.Status),
			Role:      models.UserRole(su.Role),
		}
		req := models.SaveUserRequest{Username: u.Username, Email: u.Email, BirthYear: u.BirthYear, Status: u.Status, Role: u.Role}
		if errs := req.Validate(); len(errs) > 0 {
			return result, fmt.Errorf("users[%d]: %v", i, errs)
		}
		if su.Password != "" {
			hash, err := services.HashPassword(su.Password)
			if err != nil {
				return result, fmt.Errorf("users[%d]: %w", i, err)
			}
			u.PasswordHash = hash
		}
		if _, err := store.Users.Save(ctx, u); err != nil {
			return result, fmt.Errorf("users[%d]: %w", i, err)
		}
		result.Users++
	}

	for i, sw := range seed.Words {
		req := models.SaveWordRequest{
			Text:       sw.Text,
			Definition: sw.Definition,
			Example:    sw.Example,
			Origin:     sw.Origin,
			Status:     models.WordStatus(sw.Status),
			Tags:       sw.Tags,
		}
		if errs := req.Validate(); len(errs) > 0 {
			return result, fmt.Errorf("words[%d]: %v", i, errs)
		}
		w := &models.Word{ID: sw.ID, CreatedBy: sw.CreatedBy}
		req.Apply(w)
		if _, err := store.Words.Save(ctx, w); err != nil {
			return result, fmt.Errorf("words[%d]: %w", i, err)
		}
		result.Words++
	}

	for i, ss := range seed.Suggestions {
		if ss.ID != "" {
			if _, err := store.Suggestions.GetByID(ctx, ss.ID); err == nil {
				result.Skipped++
				continue
			}
		}
		sg := &models.Suggestion{
			ID:         ss.ID,
			UserID:     ss.UserID,
			Text:       ss.Text,
			Definition: ss.Definition,
			Example:    ss.Example,
			Origin:     ss.Origin,
		}
		if _, err := store.Suggestions.Create(ctx, sg); err != nil {
			return result, fmt.Errorf("suggestions[%d]: %w", i, err)
		}
		result.Suggestions++
	}

	for i, sc := range seed.Comments {
		if sc.ID != "" {
			if _, err := store.Comments.GetByID(ctx, sc.ID); err == nil {
				result.Skipped++
				continue
			}
		}
		c := &models.Comment{ID: sc.ID, UserID: sc.UserID, WordID: sc.WordID, Text: sc.Text}
		if _, err := store.Comments.Create(ctx, c); err != nil {
			return result, fmt.Errorf("comments[%d]: %w", i, err)
		}
		result.Comments++
	}

	return result, nil
}

package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"gyansetu/internal/config"
	"gyansetu/internal/localstore"
	"gyansetu/internal/models"
	"gyansetu/internal/normalize"
	"gyansetu/internal/repository"
)

//go:embed owner.yaml
var defaultOwner []byte

type GuruSeed struct {
	Age       int     `yaml:"age"`
	Expertise string  `yaml:"expertise"`
	Bio       string  `yaml:"bio"`
	Rating    float64 `yaml:"rating"`
	Reviews   int     `yaml:"reviews"`
	UPIID     string  `yaml:"upiId"`
}

type OwnerSeed struct {
	FirstName         string   `yaml:"firstName"`
	LastName          string   `yaml:"lastName"`
	Email             string   `yaml:"email"`
	Mobile            string   `yaml:"mobile"`
	ProfilePictureURL string   `yaml:"profilePictureUrl"`
	Guru              GuruSeed `yaml:"guru"`
}

// Load reads the owner seed from path, or the embedded default when path is empty.
func Load(path string) (*OwnerSeed, error) {
	data := defaultOwner
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	}

	var s OwnerSeed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if s.FirstName == "" || s.Email == "" || s.Mobile == "" {
		return nil, errors.New("seed: firstName, email and mobile are required")
	}
	return &s, nil
}

type Seeder struct {
	users repository.UserRepository
	store localstore.Store
	cfg   *config.Config
	lg    *zap.Logger
	cost  int
}

// NewSeeder takes the local store when one backs the posts collection; store may be nil.
func NewSeeder(users repository.UserRepository, store localstore.Store, cfg *config.Config, lg *zap.Logger) *Seeder {
	return &Seeder{users: users, store: store, cfg: cfg, lg: lg, cost: bcrypt.DefaultCost}
}

// Run upserts the owner account and initialises empty collections.
func (s *Seeder) Run(ctx context.Context) (*models.User, error) {
	def, err := Load(s.cfg.SeedFile)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		if err := localstore.EnsureCollection(s.store, localstore.KeyPosts); err != nil {
			return nil, fmt.Errorf("init posts: %w", err)
		}
	}

	existing, err := s.users.GetByUsername(ctx, s.cfg.OwnerUsername)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("load owner: %w", err)
	}

	owner := existing
	if owner == nil {
		owner = &models.User{
			ID:        uuid.New().String(),
			Role:      models.RoleGuru,
			Username:  s.cfg.OwnerUsername,
			CreatedAt: time.Now(),
		}
	}
	apply(owner, def)

	if existing == nil || s.cfg.OwnerPassword != "" {
		password := s.cfg.OwnerPassword
		if password == "" {
			password = uuid.New().String() + uuid.New().String()
			s.lg.Warn("OWNER_PASSWORD not set, owner account cannot log in", zap.String("username", owner.Username))
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
		if err != nil {
			return nil, fmt.Errorf("hash owner password: %w", err)
		}
		owner.PasswordHash = string(hash)
	}

	if existing == nil {
		err = s.users.Create(ctx, owner)
	} else {
		err = s.users.Update(ctx, owner)
	}
	if err != nil {
		return nil, fmt.Errorf("save owner: %w", err)
	}

	s.lg.Info("owner account seeded", zap.String("userID", owner.ID), zap.Bool("created", existing == nil))
	return owner, nil
}

func apply(owner *models.User, def *OwnerSeed) {
	owner.Role = models.RoleGuru
	owner.FirstName = normalize.Name(def.FirstName)
	owner.LastName = normalize.Name(def.LastName)
	owner.Email = normalize.Email(def.Email)
	owner.Mobile = normalize.Mobile(def.Mobile)
	owner.ProfilePictureURL = def.ProfilePictureURL

	g := owner.Guru
	if g == nil {
		g = &models.GuruProfile{}
	}
	g.Age = def.Guru.Age
	g.Expertise = def.Guru.Expertise
	g.Bio = def.Guru.Bio
	g.Rating = def.Guru.Rating
	g.Reviews = def.Guru.Reviews
	g.UPIID = def.Guru.UPIID
	owner.Guru = g
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/volatiletech/null/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/LexovateAyacucho/qhoar-web/internal/config"
	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
	domainerrors "github.com/LexovateAyacucho/qhoar-web/internal/domain/errors"
	domainrepo "github.com/LexovateAyacucho/qhoar-web/internal/domain/repositories"
	"github.com/LexovateAyacucho/qhoar-web/internal/infrastructure/repositories"
	"github.com/LexovateAyacucho/qhoar-web/pkg/crypto"
	"github.com/LexovateAyacucho/qhoar-web/pkg/utils"
)

const minPasswordLength = 8

var openAdminDB = func(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}), &gorm.Config{PrepareStmt: false})
}

var openAdminSQLDB = func(db *gorm.DB) (io.Closer, error) {
	return db.DB()
}

type adminRuntime interface {
	EmailTaken(ctx context.Context, email string) (bool, error)
	CreateAdmin(ctx context.Context, user *entities.User, profile *entities.Profile) error
}

type createAdminDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(cfg *config.Config) (adminRuntime, io.Closer, error)
	hash    func(password string) (string, error)
	now     func() time.Time
	out     io.Writer
}

type adminRuntimeImpl struct {
	uow         domainrepo.UnitOfWork
	userRepo    domainrepo.UserRepository
	profileRepo domainrepo.ProfileRepository
}

func (r adminRuntimeImpl) EmailTaken(ctx context.Context, email string) (bool, error) {
	_, err := r.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domainerrors.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func (r adminRuntimeImpl) CreateAdmin(ctx context.Context, user *entities.User, profile *entities.Profile) error {
	return r.uow.Do(ctx, func(txCtx context.Context) error {
		if err := r.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		return r.profileRepo.Create(txCtx, profile)
	})
}

func defaultCreateAdminDeps() createAdminDeps {
	return createAdminDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (adminRuntime, io.Closer, error) {
			db, err := openAdminDB(cfg.Database.URL())
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}
			sqlDB, err := openAdminSQLDB(db)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}
			return adminRuntimeImpl{
				uow:         repositories.NewUnitOfWork(db),
				userRepo:    repositories.NewUserRepository(db),
				profileRepo: repositories.NewProfileRepository(db),
			}, sqlDB, nil
		},
		hash: crypto.HashPassword,
		now:  time.Now,
		out:  os.Stdout,
	}
}

func validateInput(email, password, name string) error {
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("--email is required and must be an e-mail address")
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("--password must have at least %d characters", minPasswordLength)
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("--name is required")
	}
	return nil
}

func runCreateAdmin(args []string, deps createAdminDeps) error {
	def := defaultCreateAdminDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.prepare == nil {
		deps.prepare = def.prepare
	}
	if deps.hash == nil {
		deps.hash = def.hash
	}
	if deps.now == nil {
		deps.now = def.now
	}
	if deps.out == nil {
		deps.out = def.out
	}

	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	emailFlag := fs.String("email", "", "admin e-mail (required)")
	passwordFlag := fs.String("password", "", "admin password, at least 8 characters (required)")
	nameFlag := fs.String("name", "", "full name shown in the admin panel (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	email := strings.ToLower(strings.TrimSpace(*emailFlag))
	if err := validateInput(email, *passwordFlag, *nameFlag); err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := deps.loadCfg()

	runtime, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	taken, err := runtime.EmailTaken(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check e-mail: %w", err)
	}
	if taken {
		return fmt.Errorf("user %s already exists", email)
	}

	hash, err := deps.hash(*passwordFlag)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := deps.now().UTC()
	user := &entities.User{
		ID:              utils.GenerateUUIDv7(),
		Email:           email,
		PasswordHash:    hash,
		EmailVerifiedAt: null.TimeFrom(now),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	profile := &entities.Profile{
		ID:        user.ID,
		Role:      entities.RoleAdmin,
		FullName:  strings.TrimSpace(*nameFlag),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := runtime.CreateAdmin(ctx, user, profile); err != nil {
		return fmt.Errorf("failed creating admin: %w", err)
	}

	_, _ = fmt.Fprintln(deps.out, "Created admin user")
	_, _ = fmt.Fprintf(deps.out, "user_id=%s\n", user.ID.String())
	_, _ = fmt.Fprintf(deps.out, "email=%s\n", user.Email)
	return nil
}

func main() {
	if err := runCreateAdmin(os.Args[1:], defaultCreateAdminDeps()); err != nil {
		log.Fatal(err)
	}
}

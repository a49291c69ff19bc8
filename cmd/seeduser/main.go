// Command seeduser creates an account directly in the database, for
// bootstrapping the first owner before the API has any users.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bizpos/internal/config"
	"bizpos/internal/infra"
	"bizpos/internal/model"
	"bizpos/internal/repository"
)

func main() {
	var (
		username = flag.String("username", "", "login name (required)")
		name     = flag.String("name", "", "display name (required)")
		password = flag.String("password", "", "password (required)")
		email    = flag.String("email", "", "email address")
		role     = flag.String("role", "owner", "owner | cashier | stock_manager")
	)
	flag.Parse()

	if *username == "" || *name == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}
	r := model.Role(*role)
	if !r.Valid() {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL, cfg.Env)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), 12)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	u := &model.User{
		Username:     *username,
		Name:         *name,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if *email != "" {
		u.Email = email
	}
	p := &model.EmployeeProfile{Role: r, IsActiveEmployee: true}

	users := repository.NewUserRepository(db)
	err = db.WithContext(context.Background()).Transaction(func(tx *gorm.DB) error {
		return users.CreateWithProfileTx(tx, u, p)
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("created %s (%s) with role %s\n", u.Username, u.ID, r)
}

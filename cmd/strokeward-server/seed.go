package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/strokeward/strokeward/internal/domain/account"
	"github.com/strokeward/strokeward/internal/domain/patient"
	"github.com/strokeward/strokeward/internal/platform/apperr"
	"github.com/strokeward/strokeward/internal/platform/credential"
	"github.com/strokeward/strokeward/internal/platform/validate"
)

type seedAccount struct {
	handle   string
	email    string
	name     string
	password string
	role     string
}

// seedAccounts are development credentials only. Production accounts come
// in through registration.
func seedAccounts() []seedAccount {
	return []seedAccount{
		{handle: "admin", email: "admin@strokeward.local", name: "Ward Administrator", password: "Adm1nPass!", role: account.RoleAdmin},
		{handle: "doctor1", email: "doctor1@strokeward.local", name: "Dr. Asha Raman", password: "D0ctorPass!", role: account.RoleDoctor},
		{handle: "staff1", email: "staff1@strokeward.local", name: "Jo Lindqvist", password: "St4ffPass!", role: account.RoleStaff},
	}
}

// seedRecords is a small slice of realistic stroke-risk documents.
func seedRecords() []patient.Fields {
	return []patient.Fields{
		{
			"gender": "Male", "age": 67, "hypertension": 0, "heart_disease": 1,
			"ever_married": "Yes", "work_type": "Private", "Residence_type": "Urban",
			"avg_glucose_level": 228.69, "bmi": 36.6, "smoking_status": "formerly smoked",
			"stroke": 1,
		},
		{
			"gender": "Female", "age": 61, "hypertension": 0, "heart_disease": 0,
			"ever_married": "Yes", "work_type": "Self-employed", "Residence_type": "Rural",
			"avg_glucose_level": 202.21, "bmi": 28.9, "smoking_status": "never smoked",
			"stroke": 1,
		},
		{
			"gender": "Female", "age": 44, "hypertension": 0, "heart_disease": 0,
			"ever_married": "Yes", "work_type": "Govt_job", "Residence_type": "Urban",
			"avg_glucose_level": 85.28, "bmi": 26.2, "smoking_status": "Unknown",
			"stroke": 0,
		},
		{
			"gender": "Male", "age": 80, "hypertension": 1, "heart_disease": 0,
			"ever_married": "Yes", "work_type": "Private", "Residence_type": "Rural",
			"avg_glucose_level": 105.92, "bmi": 32.5, "smoking_status": "never smoked",
			"stroke": 0,
		},
	}
}

// seed creates the development accounts and sample records. Existing
// accounts are left alone; records are only inserted into an empty store.
func seed(ctx context.Context, pool *pgxpool.Pool, bcryptCost int) error {
	hasher := credential.NewHasher(bcryptCost)
	repo := account.NewAccountRepo(pool)

	for _, s := range seedAccounts() {
		if _, err := repo.GetByHandle(ctx, s.handle); err == nil {
			fmt.Printf("account %q already exists, skipping\n", s.handle)
			continue
		} else if !errors.Is(err, apperr.ErrNotFound) {
			return err
		}

		digest, err := hasher.Hash(s.password)
		if err != nil {
			return fmt.Errorf("hash password for %q: %w", s.handle, err)
		}
		a := &account.Account{
			Handle:         s.handle,
			Email:          s.email,
			DisplayName:    s.name,
			PasswordDigest: digest,
			Role:           s.role,
			Active:         true,
		}
		if err := repo.Create(ctx, a); err != nil {
			return fmt.Errorf("create account %q: %w", s.handle, err)
		}
		fmt.Printf("created account %q (%s)\n", s.handle, s.role)
	}

	store := patient.NewRecordStore(pool)
	_, total, err := store.List(ctx, 1, 0)
	if err != nil {
		return err
	}
	if total > 0 {
		fmt.Printf("%d record(s) already present, skipping sample data\n", total)
		return nil
	}

	for _, fields := range seedRecords() {
		if res := validate.PatientData(fields); !res.OK {
			return fmt.Errorf("invalid seed record: %s", res.Reason)
		}
		r := &patient.Record{Fields: validate.SanitizeAll(fields)}
		if err := store.Create(ctx, r); err != nil {
			return fmt.Errorf("create sample record: %w", err)
		}
	}
	fmt.Printf("created %d sample record(s)\n", len(seedRecords()))
	return nil
}

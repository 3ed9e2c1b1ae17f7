package main

import (
	"testing"

	"stylematrix/backend/internal/config"
)

func TestValidateSecurityConfigRejectsWeakValues(t *testing.T) {
	err := validateSecurityConfig(config.Config{AuthSecret: "short", ManagerPIN: "739154"})
	if err == nil {
		t.Fatalf("expected short auth secret to be rejected")
	}
}

func TestValidateSecurityConfigRejectsWeakPINs(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"
	for _, pin := range []string{"123456", "654321", "111111", "12345", "234567", "876543"} {
		if err := validateSecurityConfig(config.Config{AuthSecret: secret, ManagerPIN: pin}); err == nil {
			t.Fatalf("expected PIN %q to be rejected", pin)
		}
	}
}

func TestValidateSecurityConfigAcceptsStrongValues(t *testing.T) {
	err := validateSecurityConfig(config.Config{AuthSecret: "0123456789abcdef0123456789abcdef", ManagerPIN: "739154"})
	if err != nil {
		t.Fatalf("expected strong config to pass, got %v", err)
	}
}

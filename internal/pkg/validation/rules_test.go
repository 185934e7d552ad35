package validation_test

import (
	"testing"

	"github.com/pandu-magang/pandu-backend/internal/pkg/validation"
)

func TestNISPattern(t *testing.T) {
	valid := []string{"123456", "202600011234"}
	for _, s := range valid {
		if !validation.CompiledPatterns.NIS.MatchString(s) {
			t.Errorf("NIS %q should match", s)
		}
	}
	invalid := []string{"12345", "1234567890123", "abc12345", ""}
	for _, s := range invalid {
		if validation.CompiledPatterns.NIS.MatchString(s) {
			t.Errorf("NIS %q should not match", s)
		}
	}
}

func TestNIMPattern(t *testing.T) {
	valid := []string{"20260100", "20260100123456"}
	for _, s := range valid {
		if !validation.CompiledPatterns.NIM.MatchString(s) {
			t.Errorf("NIM %q should match", s)
		}
	}
	invalid := []string{"2026010", "202601001234567", "2026-0100", ""}
	for _, s := range invalid {
		if validation.CompiledPatterns.NIM.MatchString(s) {
			t.Errorf("NIM %q should not match", s)
		}
	}
}

func TestStringValidation(t *testing.T) {
	if validation.NewStringValidation("").Validate() {
		t.Error("required empty string should fail")
	}
	if !validation.NewStringValidation("").WithRequired(false).Validate() {
		t.Error("optional empty string should pass")
	}
	if validation.NewStringValidation("a").WithMinLength(2).Validate() {
		t.Error("string below min length should fail")
	}
	if validation.NewStringValidation("abcdef").WithMaxLength(3).Validate() {
		t.Error("string above max length should fail")
	}
	ok := validation.NewStringValidation("12345678").
		WithPattern(validation.CompiledPatterns.NIM).
		Validate()
	if !ok {
		t.Error("valid NIM should pass pattern validation")
	}
}

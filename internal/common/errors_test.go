package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinels_AreDistinct(t *testing.T) {
	all := []error{
		ErrorNotFound, ErrStoreUnavailable, ErrAccessDenied, ErrorForbidden,
		ErrDuplicateUser, ErrProtectedAccount, ErrInvertedInterval, ErrEmptyResult,
		ErrValidation, ErrInvalidToken, ErrTokenExpired,
	}
	for i := range all {
		for j := range all {
			if i != j && errors.Is(all[i], all[j]) {
				t.Fatalf("%v must not match %v", all[i], all[j])
			}
		}
	}
}

func TestSentinels_SurviveWrapping(t *testing.T) {
	err := fmt.Errorf("db error: %w: %w", ErrStoreUnavailable, errors.New("connection refused"))
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("wrapped error lost its sentinel: %v", err)
	}
}

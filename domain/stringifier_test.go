package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// === StringStringifier ===

func TestStringStringifier_RoundTrip(t *testing.T) {
	values := []string{"", "alice", "a b/c", "per%cent", "日本語"}

	s := StringStringifier{}
	for _, v := range values {
		encoded, err := s.ToString(v)
		require.NoError(t, err)

		decoded, err := s.FromString(encoded)
		require.NoError(t, err)
		assert.Equal(t, v, decoded)
	}
}

func TestStringStringifier_DistinctValuesDistinctStrings(t *testing.T) {
	s := StringStringifier{}
	a, err := s.ToString("alice")
	require.NoError(t, err)
	b, err := s.ToString("bob")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

// === UUIDStringifier ===

func TestUUIDStringifier_RoundTrip(t *testing.T) {
	s := UUIDStringifier{}
	id := uuid.MustParse("0190e3a0-5f2b-7c11-a000-000000000001")

	encoded, err := s.ToString(id)
	require.NoError(t, err)
	assert.Equal(t, "0190e3a0-5f2b-7c11-a000-000000000001", encoded)

	decoded, err := s.FromString(encoded)
	require.NoError(t, err)
	assert.Equal(t, id, decoded)
}

func TestUUIDStringifier_InvalidInput(t *testing.T) {
	s := UUIDStringifier{}
	_, err := s.FromString("not-a-uuid")
	require.Error(t, err)

	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
}

// === Int64Stringifier ===

func TestInt64Stringifier_RoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 42, 9223372036854775807, -9223372036854775808}

	s := Int64Stringifier{}
	for _, v := range values {
		encoded, err := s.ToString(v)
		require.NoError(t, err)

		decoded, err := s.FromString(encoded)
		require.NoError(t, err)
		assert.Equal(t, v, decoded)
	}
}

func TestInt64Stringifier_DistinctValuesDistinctStrings(t *testing.T) {
	s := Int64Stringifier{}
	seen := map[string]int64{}
	for _, v := range []int64{-10, -1, 0, 1, 10, 100} {
		encoded, err := s.ToString(v)
		require.NoError(t, err)
		if prev, ok := seen[encoded]; ok {
			t.Fatalf("values %d and %d share encoding %q", prev, v, encoded)
		}
		seen[encoded] = v
	}
}

func TestInt64Stringifier_InvalidInput(t *testing.T) {
	s := Int64Stringifier{}
	_, err := s.FromString("twelve")
	require.Error(t, err)

	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
}

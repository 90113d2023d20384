package roster

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var studentTenantID = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")

func TestNewStudent(t *testing.T) {
	t.Run("creates student successfully", func(t *testing.T) {
		joined := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
		student, err := NewStudent(studentTenantID, "Ravi Kumar", "Ravi@Example.com", "9876543210", joined)

		require.NoError(t, err)
		assert.Equal(t, "Ravi Kumar", student.Name)
		assert.Equal(t, "ravi@example.com", student.Email)
		assert.Equal(t, FeeStatusPending, student.FeeStatus)
		assert.Equal(t, joined, student.JoiningDate)
		assert.Nil(t, student.BatchID)
	})

	t.Run("defaults joining date to now", func(t *testing.T) {
		student, err := NewStudent(studentTenantID, "Ravi Kumar", "", "", time.Time{})

		require.NoError(t, err)
		assert.False(t, student.JoiningDate.IsZero())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewStudent(studentTenantID, "  ", "", "", time.Time{})

		assert.Error(t, err)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := NewStudent(studentTenantID, "Ravi Kumar", "not-an-email", "", time.Time{})

		assert.Error(t, err)
	})
}

func TestStudent_FeeStatus(t *testing.T) {
	t.Run("accepts the three valid statuses", func(t *testing.T) {
		student, _ := NewStudent(studentTenantID, "Ravi Kumar", "", "", time.Time{})

		for _, status := range []FeeStatus{FeeStatusPaid, FeeStatusUnpaid, FeeStatusPending} {
			assert.NoError(t, student.SetFeeStatus(status))
			assert.Equal(t, status, student.FeeStatus)
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		student, _ := NewStudent(studentTenantID, "Ravi Kumar", "", "", time.Time{})

		err := student.SetFeeStatus(FeeStatus("OVERDUE"))

		assert.Error(t, err)
	})
}

func TestStudent_BatchAssignment(t *testing.T) {
	batchID := uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")

	t.Run("assign and remove", func(t *testing.T) {
		student, _ := NewStudent(studentTenantID, "Ravi Kumar", "", "", time.Time{})

		require.NoError(t, student.AssignToBatch(batchID))
		require.NotNil(t, student.BatchID)
		assert.Equal(t, batchID, *student.BatchID)

		student.RemoveFromBatch()
		assert.Nil(t, student.BatchID)
	})

	t.Run("rejects nil batch id", func(t *testing.T) {
		student, _ := NewStudent(studentTenantID, "Ravi Kumar", "", "", time.Time{})

		err := student.AssignToBatch(uuid.Nil)

		assert.Error(t, err)
	})
}

func TestStudent_Sports(t *testing.T) {
	sportID := uuid.MustParse("cccccccc-cccc-cccc-cccc-cccccccccccc")

	t.Run("add once", func(t *testing.T) {
		student, _ := NewStudent(studentTenantID, "Ravi Kumar", "", "", time.Time{})

		require.NoError(t, student.AddSport(sportID))
		assert.Error(t, student.AddSport(sportID))
	})

	t.Run("remove linked sport", func(t *testing.T) {
		student, _ := NewStudent(studentTenantID, "Ravi Kumar", "", "", time.Time{})
		require.NoError(t, student.AddSport(sportID))

		require.NoError(t, student.RemoveSport(sportID))
		assert.Empty(t, student.SportIDs)
	})
}

func TestStudent_SetDateOfBirth(t *testing.T) {
	t.Run("rejects future date", func(t *testing.T) {
		student, _ := NewStudent(studentTenantID, "Ravi Kumar", "", "", time.Time{})

		err := student.SetDateOfBirth(time.Now().Add(24 * time.Hour))

		assert.Error(t, err)
	})
}

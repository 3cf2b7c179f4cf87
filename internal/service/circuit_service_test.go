package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/crux/internal/domain"
	"github.com/alexanderramin/crux/internal/repository"
	"github.com/alexanderramin/crux/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (CircuitService, repository.CircuitRepo) {
	t.Helper()
	repo := repository.NewKVCircuitRepo(repository.NewSQLiteKV(testutil.NewTestDB(t)))
	svc, err := NewCircuitService(context.Background(), repo)
	require.NoError(t, err)
	return svc, repo
}

func TestCreateCircuit_Defaults(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	c, err := svc.CreateCircuit(ctx, "Morning Blues", 5, domain.ColorBlue)
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Morning Blues", c.Name)
	require.Len(t, c.Problems, 5)
	for i, p := range c.Problems {
		assert.Equal(t, i+1, p.ID)
		assert.Equal(t, domain.StatusUnattempted, p.Status)
	}
	require.NotNil(t, c.LastViewed)

	// New circuit becomes current and is written through.
	require.NotNil(t, svc.Current())
	assert.Equal(t, c.ID, svc.Current().ID)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Circuits, 1)
	assert.Equal(t, c.ID, loaded.CurrentCircuitID)
}

func TestCreateCircuit_RejectsNonPositiveCount(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	for _, count := range []int{0, -3} {
		_, err := svc.CreateCircuit(ctx, "Bad", count, domain.ColorRed)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr, "count %d should be rejected", count)
	}
	assert.Empty(t, svc.Circuits(), "store should be unchanged")
}

func TestCreateCircuit_BlankNameGetsGeneratedOne(t *testing.T) {
	svc, _ := setupService(t)

	c, err := svc.CreateCircuit(context.Background(), "", 3, domain.ColorGreen)
	require.NoError(t, err)
	assert.Contains(t, c.Name, "Green Circuit")
}

func TestDeleteCircuit_LastCircuitRejected(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	c, err := svc.CreateCircuit(ctx, "Only", 2, domain.ColorGreen)
	require.NoError(t, err)

	err = svc.DeleteCircuit(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrLastCircuit)
	assert.Len(t, svc.Circuits(), 1)
}

func TestDeleteCircuit_CurrentFallsBackToFirstRemaining(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	first, err := svc.CreateCircuit(ctx, "First", 2, domain.ColorGreen)
	require.NoError(t, err)
	second, err := svc.CreateCircuit(ctx, "Second", 2, domain.ColorRed)
	require.NoError(t, err)

	// Second is current after creation; deleting it must hand the
	// pointer to the first remaining circuit in store order.
	require.Equal(t, second.ID, svc.Current().ID)
	require.NoError(t, svc.DeleteCircuit(ctx, second.ID))
	require.NotNil(t, svc.Current())
	assert.Equal(t, first.ID, svc.Current().ID)
}

func TestDeleteCircuit_NonCurrentKeepsPointer(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	first, err := svc.CreateCircuit(ctx, "First", 2, domain.ColorGreen)
	require.NoError(t, err)
	second, err := svc.CreateCircuit(ctx, "Second", 2, domain.ColorRed)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCircuit(ctx, first.ID))
	assert.Equal(t, second.ID, svc.Current().ID)
}

func TestDeleteCircuit_UnknownID(t *testing.T) {
	svc, _ := setupService(t)
	_, err := svc.CreateCircuit(context.Background(), "A", 1, domain.ColorGreen)
	require.NoError(t, err)

	err = svc.DeleteCircuit(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGrowShrink_NumberingStaysContiguous(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	c, err := svc.CreateCircuit(ctx, "Grow", 3, domain.ColorPurple)
	require.NoError(t, err)

	require.NoError(t, svc.GrowProblems(ctx, c.ID))
	require.NoError(t, svc.GrowProblems(ctx, c.ID))
	require.NoError(t, svc.ShrinkProblems(ctx, c.ID, false))
	require.NoError(t, svc.GrowProblems(ctx, c.ID))

	got, err := svc.Circuit(c.ID)
	require.NoError(t, err)
	require.Len(t, got.Problems, 5)
	for i, p := range got.Problems {
		assert.Equal(t, i+1, p.ID, "problems must stay numbered 1..N")
	}
}

func TestShrinkProblems_MinimumCount(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	c, err := svc.CreateCircuit(ctx, "Tiny", 1, domain.ColorYellow)
	require.NoError(t, err)

	err = svc.ShrinkProblems(ctx, c.ID, false)
	assert.ErrorIs(t, err, domain.ErrMinimumCount)
}

func TestShrinkProblems_ProgressNeedsConfirmation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	c, err := svc.CreateCircuit(ctx, "Careful", 3, domain.ColorRed)
	require.NoError(t, err)
	require.NoError(t, svc.SetProblemStatus(ctx, c.ID, 3, domain.StatusSent))

	err = svc.ShrinkProblems(ctx, c.ID, false)
	var confirmErr *domain.ConfirmationRequiredError
	require.ErrorAs(t, err, &confirmErr)
	assert.Equal(t, 3, confirmErr.ProblemID)
	assert.Equal(t, domain.StatusSent, confirmErr.Status)

	// Count unchanged until confirmation is supplied.
	got, err := svc.Circuit(c.ID)
	require.NoError(t, err)
	assert.Len(t, got.Problems, 3)

	require.NoError(t, svc.ShrinkProblems(ctx, c.ID, true))
	got, err = svc.Circuit(c.ID)
	require.NoError(t, err)
	assert.Len(t, got.Problems, 2)
}

func TestShrinkProblems_UnattemptedTailNeedsNoConfirmation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	c, err := svc.CreateCircuit(ctx, "Easy", 2, domain.ColorGreen)
	require.NoError(t, err)

	require.NoError(t, svc.ShrinkProblems(ctx, c.ID, false))
	got, err := svc.Circuit(c.ID)
	require.NoError(t, err)
	assert.Len(t, got.Problems, 1)
}

func TestCycleProblemStatus(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	c, err := svc.CreateCircuit(ctx, "Cycle", 1, domain.ColorGreen)
	require.NoError(t, err)

	status, err := svc.CycleProblemStatus(ctx, c.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFlashed, status, "first tap from unattempted yields flashed")

	// Three more taps return to the original status.
	for i := 0; i < 3; i++ {
		status, err = svc.CycleProblemStatus(ctx, c.ID, 1)
		require.NoError(t, err)
	}
	assert.Equal(t, domain.StatusUnattempted, status)
}

func TestProblemMutations_UnknownIDsReported(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	c, err := svc.CreateCircuit(ctx, "Real", 2, domain.ColorBlue)
	require.NoError(t, err)

	tests := []struct {
		name string
		call func() error
	}{
		{"status, bad circuit", func() error { return svc.SetProblemStatus(ctx, "nope", 1, domain.StatusSent) }},
		{"status, bad problem", func() error { return svc.SetProblemStatus(ctx, c.ID, 99, domain.StatusSent) }},
		{"note, bad problem", func() error { return svc.SetProblemNote(ctx, c.ID, 99, "hi") }},
		{"location, bad problem", func() error { return svc.SetProblemLocation(ctx, c.ID, 99, nil) }},
		{"cycle, bad circuit", func() error { _, err := svc.CycleProblemStatus(ctx, "nope", 1); return err }},
		{"grow, bad circuit", func() error { return svc.GrowProblems(ctx, "nope") }},
		{"reset, bad circuit", func() error { return svc.ResetProgress(ctx, "nope") }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.call(), domain.ErrNotFound)
		})
	}
}

func TestSetProblemStatus_RejectsUnknownStatus(t *testing.T) {
	svc, _ := setupService(t)
	c, err := svc.CreateCircuit(context.Background(), "A", 1, domain.ColorGreen)
	require.NoError(t, err)

	err = svc.SetProblemStatus(context.Background(), c.ID, 1, domain.Status("crushed"))
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestSetProblemLocation_BoundsChecked(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	c, err := svc.CreateCircuit(ctx, "Pins", 1, domain.ColorGreen)
	require.NoError(t, err)

	require.NoError(t, svc.SetProblemLocation(ctx, c.ID, 1, &domain.Location{X: 50, Y: 99.9}))

	err = svc.SetProblemLocation(ctx, c.ID, 1, &domain.Location{X: 120, Y: 10})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	// Clearing the pin is always allowed.
	require.NoError(t, svc.SetProblemLocation(ctx, c.ID, 1, nil))
	got, err := svc.Circuit(c.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Problems[0].Location)
}

func TestResetProgress_KeepsNotesAndPins(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	c, err := svc.CreateCircuit(ctx, "Reset", 3, domain.ColorMurple)
	require.NoError(t, err)
	require.NoError(t, svc.SetProblemStatus(ctx, c.ID, 1, domain.StatusSent))
	require.NoError(t, svc.SetProblemStatus(ctx, c.ID, 2, domain.StatusProject))
	require.NoError(t, svc.SetProblemNote(ctx, c.ID, 1, "heel hook start"))
	require.NoError(t, svc.SetProblemLocation(ctx, c.ID, 2, &domain.Location{X: 10, Y: 20}))

	require.NoError(t, svc.ResetProgress(ctx, c.ID))

	got, err := svc.Circuit(c.ID)
	require.NoError(t, err)
	for _, p := range got.Problems {
		assert.Equal(t, domain.StatusUnattempted, p.Status)
	}
	assert.Equal(t, "heel hook start", got.Problems[0].Note)
	require.NotNil(t, got.Problems[1].Location)
}

func TestTouchLastViewed_Advances(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	c, err := svc.CreateCircuit(ctx, "Touch", 1, domain.ColorGreen)
	require.NoError(t, err)
	before := *c.LastViewed

	impl := svc.(*circuitService)
	impl.now = func() time.Time { return before.Add(time.Hour) }

	require.NoError(t, svc.TouchLastViewed(ctx, c.ID))
	got, err := svc.Circuit(c.ID)
	require.NoError(t, err)
	assert.True(t, got.LastViewed.After(before))
}

func TestWriteThrough_MutationsSurviveReload(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	c, err := svc.CreateCircuit(ctx, "Durable", 2, domain.ColorBlue)
	require.NoError(t, err)
	_, err = svc.CycleProblemStatus(ctx, c.ID, 1)
	require.NoError(t, err)
	require.NoError(t, svc.SetProblemNote(ctx, c.ID, 2, "slopey topout"))

	// A fresh service over the same repo sees every mutation.
	reloaded, err := NewCircuitService(ctx, repo)
	require.NoError(t, err)
	got, err := reloaded.Circuit(c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFlashed, got.Problems[0].Status)
	assert.Equal(t, "slopey topout", got.Problems[1].Note)
}

func TestExportImport_RoundTrip(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	c, err := svc.CreateCircuit(ctx, "Test", 3, domain.ColorGreen)
	require.NoError(t, err)
	require.NoError(t, svc.SetProblemStatus(ctx, c.ID, 1, domain.StatusFlashed))
	require.NoError(t, svc.SetProblemStatus(ctx, c.ID, 2, domain.StatusSent))
	require.NoError(t, svc.SetProblemStatus(ctx, c.ID, 3, domain.StatusProject))
	require.NoError(t, svc.SetProblemNote(ctx, c.ID, 2, "crimpy"))
	require.NoError(t, svc.SetProblemLocation(ctx, c.ID, 1, &domain.Location{X: 5, Y: 5}))

	data, err := svc.ExportText()
	require.NoError(t, err)

	// Import into an empty store.
	fresh, _ := setupService(t)
	n, err := fresh.ImportText(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	circuits := fresh.Circuits()
	require.Len(t, circuits, 1)
	got := circuits[0]
	assert.Equal(t, "Test", got.Name)
	assert.Equal(t, domain.ColorGreen, got.Color)
	require.Len(t, got.Problems, 3)
	assert.Equal(t, domain.StatusFlashed, got.Problems[0].Status)
	assert.Equal(t, domain.StatusSent, got.Problems[1].Status)
	assert.Equal(t, domain.StatusProject, got.Problems[2].Status)
	assert.Equal(t, "crimpy", got.Problems[1].Note)
	// The text format does not carry pins.
	assert.Nil(t, got.Problems[0].Location)
}

func TestImportText_CollidingIDsGetFreshOnes(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	c, err := svc.CreateCircuit(ctx, "Original", 1, domain.ColorGreen)
	require.NoError(t, err)

	data, err := svc.ExportText()
	require.NoError(t, err)

	// Importing our own export back collides on every id.
	n, err := svc.ImportText(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	circuits := svc.Circuits()
	require.Len(t, circuits, 2)
	assert.NotEqual(t, c.ID, circuits[1].ID)

	seen := map[string]bool{}
	for _, cc := range circuits {
		assert.False(t, seen[cc.ID], "ids must be unique after import")
		seen[cc.ID] = true
	}
}

func TestImportText_Appends(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateCircuit(ctx, "Existing", 2, domain.ColorBlue)
	require.NoError(t, err)

	data := "=== BOULDERING CIRCUITS v1 ===\n\n" +
		"=== CIRCUIT ===\n" +
		"ID: imported-1\n" +
		"Name: Existing\n" + // same name is fine, circuits coexist
		"Color: red\n" +
		"LastViewed: Never\n" +
		"\n=== PROBLEMS ===\n" +
		"1: Status-sent Note-\n"

	n, err := svc.ImportText(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, svc.Circuits(), 2)
	assert.Equal(t, "imported-1", svc.Circuits()[1].ID)
}

func TestImportText_GarbageLeavesStoreUntouched(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateCircuit(ctx, "Keep", 1, domain.ColorGreen)
	require.NoError(t, err)

	_, err = svc.ImportText(ctx, "this is not a circuits file")
	require.Error(t, err)
	assert.Len(t, svc.Circuits(), 1)
}

func TestExportText_EmptyStoreRejected(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.ExportText()
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestSelectCircuit_SetsCurrentAndTouches(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	first, err := svc.CreateCircuit(ctx, "First", 1, domain.ColorGreen)
	require.NoError(t, err)
	_, err = svc.CreateCircuit(ctx, "Second", 1, domain.ColorRed)
	require.NoError(t, err)

	impl := svc.(*circuitService)
	impl.now = func() time.Time { return time.Now().Add(time.Hour) }

	require.NoError(t, svc.SelectCircuit(ctx, first.ID))
	assert.Equal(t, first.ID, svc.Current().ID)

	got, err := svc.Circuit(first.ID)
	require.NoError(t, err)
	assert.True(t, got.LastViewed.After(time.Now()))
}

package app_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"davazen/internal/cases/adapters/repository"
	"davazen/internal/cases/app"
	"davazen/internal/cases/domain/entities"
	"davazen/internal/storage/adapters/memory"
	"davazen/pkg/apperr"
)

const (
	owner    = "user-a"
	stranger = "user-b"
)

var errStoreDown = errors.New("store is down")

func newUseCase(t *testing.T, opts ...app.Option) *app.CaseUseCase {
	t.Helper()
	return app.NewCaseUseCase(repository.NewCaseRepository(memory.New()), opts...)
}

func draft(court, file string) entities.CaseDraft {
	return entities.CaseDraft{CourtName: court, FileNumber: file, Parties: "P", TarafAdi: "D", CaseStatus: "S"}
}

func ptr[T any](v T) *T { return &v }

func TestCreate(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	c, err := uc.Create(ctx, owner, draft("C1", "F1"))
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, owner, c.UserID)
	assert.Equal(t, "C1", c.CourtName)
	assert.NotNil(t, c.Notes)
	assert.Empty(t, c.Notes)

	other, err := uc.Create(ctx, owner, draft("C1", "F1"))
	require.NoError(t, err)
	assert.NotEqual(t, c.ID, other.ID)

	_, err = uc.Create(ctx, owner, draft("  ", "F2"))
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.ErrorIs(t, err, entities.ErrCourtNameRequired)

	_, err = uc.Create(ctx, owner, draft("C1", ""))
	assert.ErrorIs(t, err, entities.ErrFileNumberRequired)
}

func TestCreate_StoreError(t *testing.T) {
	repo := new(mockCaseRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(errStoreDown)

	uc := app.NewCaseUseCase(repo)
	_, err := uc.Create(context.Background(), owner, draft("C1", "F1"))
	require.ErrorIs(t, err, errStoreDown)
	repo.AssertExpectations(t)
}

func TestOwnershipGuard(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	c, err := uc.Create(ctx, owner, draft("C1", "F1"))
	require.NoError(t, err)

	_, err = uc.Get(ctx, c.ID, stranger)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = uc.Patch(ctx, c.ID, stranger, entities.CasePatch{CaseStatus: ptr("Hijacked")})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	err = uc.Delete(ctx, c.ID, stranger)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = uc.AppendNote(ctx, c.ID, stranger, "note")
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	got, err := uc.Get(ctx, c.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "S", got.CaseStatus)

	patched, err := uc.Patch(ctx, c.ID, owner, entities.CasePatch{CaseStatus: ptr("Closed")})
	require.NoError(t, err)
	assert.Equal(t, "Closed", patched.CaseStatus)

	require.NoError(t, uc.Delete(ctx, c.ID, owner))
}

func TestNotFoundBeforeForbidden(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	_, err := uc.Get(ctx, "missing", stranger)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, err, entities.ErrCaseNotFound)

	_, err = uc.Patch(ctx, "missing", stranger, entities.CasePatch{})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.ErrorIs(t, uc.Delete(ctx, "missing", stranger), apperr.ErrNotFound)
}

func TestPatch(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	c, err := uc.Create(ctx, owner, draft("C1", "F1"))
	require.NoError(t, err)

	t.Run("пустой патч ничего не меняет", func(t *testing.T) {
		got, err := uc.Patch(ctx, c.ID, owner, entities.CasePatch{})
		require.NoError(t, err)
		assert.Equal(t, c, got)

		stored, err := uc.Get(ctx, c.ID, owner)
		require.NoError(t, err)
		assert.Equal(t, c, stored)
	})

	t.Run("заметки заменяются целиком", func(t *testing.T) {
		_, err := uc.AppendNote(ctx, c.ID, owner, "first")
		require.NoError(t, err)

		replacement := []entities.Note{{ID: "n1", Content: "only"}}
		got, err := uc.Patch(ctx, c.ID, owner, entities.CasePatch{Notes: &replacement})
		require.NoError(t, err)
		require.Len(t, got.Notes, 1)
		assert.Equal(t, "only", got.Notes[0].Content)

		stored, err := uc.Get(ctx, c.ID, owner)
		require.NoError(t, err)
		assert.Equal(t, replacement, stored.Notes)
	})

	t.Run("пустой номер дела в патче отклоняется", func(t *testing.T) {
		_, err := uc.Patch(ctx, c.ID, owner, entities.CasePatch{FileNumber: ptr(" ")})
		require.ErrorIs(t, err, apperr.ErrValidation)

		stored, err := uc.Get(ctx, c.ID, owner)
		require.NoError(t, err)
		assert.Equal(t, "F1", stored.FileNumber)
	})

	t.Run("id и владелец не меняются", func(t *testing.T) {
		got, err := uc.Patch(ctx, c.ID, owner, entities.CasePatch{Parties: ptr("X v Y")})
		require.NoError(t, err)
		assert.Equal(t, c.ID, got.ID)
		assert.Equal(t, owner, got.UserID)
		assert.Equal(t, "X v Y", got.Parties)
	})
}

func TestPatch_StoreError(t *testing.T) {
	repo := new(mockCaseRepository)
	repo.On("Get", mock.Anything, "c1").Return(&entities.Case{ID: "c1", UserID: owner, Notes: []entities.Note{}}, nil)
	repo.On("Put", mock.Anything, mock.Anything).Return(errStoreDown)

	uc := app.NewCaseUseCase(repo)
	_, err := uc.Patch(context.Background(), "c1", owner, entities.CasePatch{CaseStatus: ptr("Closed")})
	require.ErrorIs(t, err, errStoreDown)
	repo.AssertExpectations(t)
}

func TestConcurrentPatches_Serialize(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	c, err := uc.Create(ctx, owner, draft("C1", "F1"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Patch(ctx, c.ID, owner, entities.CasePatch{CaseStatus: ptr(fmt.Sprintf("S%d", i))})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := uc.Get(ctx, c.ID, owner)
	require.NoError(t, err)
	assert.Regexp(t, `^S\d+$`, got.CaseStatus)
	assert.Equal(t, "F1", got.FileNumber)
}

func TestDelete_RemovesFromListing(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	keep, err := uc.Create(ctx, owner, draft("C1", "F1"))
	require.NoError(t, err)
	gone, err := uc.Create(ctx, owner, draft("C2", "F2"))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, gone.ID, owner))

	list, err := uc.ListByOwner(ctx, owner, entities.ListQuery{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)

	_, err = uc.Get(ctx, gone.ID, owner)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.ErrorIs(t, uc.Delete(ctx, gone.ID, owner), apperr.ErrNotFound)
}

func TestListByOwner_Isolation(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	var wg sync.WaitGroup
	for i := range 25 {
		for _, user := range []string{owner, stranger} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := uc.Create(ctx, user, draft("C", fmt.Sprintf("%s-%d", user, i)))
				assert.NoError(t, err)
			}()
		}
	}
	wg.Wait()

	for _, user := range []string{owner, stranger} {
		list, err := uc.ListByOwner(ctx, user, entities.ListQuery{})
		require.NoError(t, err)
		assert.Len(t, list, 25)
		for _, c := range list {
			assert.Equal(t, user, c.UserID)
		}
	}

	list, err := uc.ListByOwner(ctx, "nobody", entities.ListQuery{})
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestListByOwner_SearchAndSort(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	for _, d := range []entities.CaseDraft{
		{CourtName: "Ankara 3. Asliye", FileNumber: "2023/2", CaseStatus: "Açık"},
		{CourtName: "istanbul 1. Asliye", FileNumber: "2023/1", CaseStatus: "Kapalı"},
		{CourtName: "Bursa", FileNumber: "2022/9", CaseStatus: "Açık"},
	} {
		_, err := uc.Create(ctx, owner, d)
		require.NoError(t, err)
	}

	files := func(cs []*entities.Case) []string {
		out := make([]string, 0, len(cs))
		for _, c := range cs {
			out = append(out, c.FileNumber)
		}
		return out
	}

	tests := []struct {
		name    string
		query   entities.ListQuery
		want    []string
		wantErr error
	}{
		{name: "порядок добавления", query: entities.ListQuery{}, want: []string{"2023/2", "2023/1", "2022/9"}},
		{name: "поиск без учета регистра", query: entities.ListQuery{Search: "ASLIYE"}, want: []string{"2023/2", "2023/1"}},
		{name: "поиск по номеру", query: entities.ListQuery{Search: "2022"}, want: []string{"2022/9"}},
		{name: "сортировка по номеру", query: entities.ListQuery{SortBy: entities.SortFileNumber}, want: []string{"2022/9", "2023/1", "2023/2"}},
		{name: "сортировка по убыванию", query: entities.ListQuery{SortBy: entities.SortFileNumber, Desc: true}, want: []string{"2023/2", "2023/1", "2022/9"}},
		{name: "сортировка по суду без учета регистра", query: entities.ListQuery{SortBy: entities.SortCourtName}, want: []string{"2023/2", "2022/9", "2023/1"}},
		{name: "устойчивая сортировка", query: entities.ListQuery{SortBy: entities.SortCaseStatus}, want: []string{"2023/2", "2022/9", "2023/1"}},
		{name: "неизвестное поле", query: entities.ListQuery{SortBy: "userId"}, wantErr: apperr.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uc.ListByOwner(ctx, owner, tt.query)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, files(got))
		})
	}
}

func TestListByOwner_StoreError(t *testing.T) {
	repo := new(mockCaseRepository)
	repo.On("List", mock.Anything).Return(nil, errStoreDown)

	uc := app.NewCaseUseCase(repo)
	_, err := uc.ListByOwner(context.Background(), owner, entities.ListQuery{})
	assert.ErrorIs(t, err, errStoreDown)
}

func TestAppendNote(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("TRT", 3*60*60))
	uc := newUseCase(t, app.WithClock(func() time.Time { return fixed }))

	c, err := uc.Create(ctx, owner, draft("C1", "F1"))
	require.NoError(t, err)

	got, err := uc.AppendNote(ctx, c.ID, owner, "  hearing moved  ")
	require.NoError(t, err)
	require.Len(t, got.Notes, 1)
	assert.NotEmpty(t, got.Notes[0].ID)
	assert.Equal(t, "hearing moved", got.Notes[0].Content)
	assert.Equal(t, fixed.UTC(), got.Notes[0].CreatedAt)
	assert.Equal(t, time.UTC, got.Notes[0].CreatedAt.Location())

	_, err = uc.AppendNote(ctx, c.ID, owner, "   ")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = uc.AppendNote(ctx, "missing", owner, "x")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestAppendNote_ConcurrentAppendsAreKept(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	c, err := uc.Create(ctx, owner, draft("C1", "F1"))
	require.NoError(t, err)

	const n = 30
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.AppendNote(ctx, c.ID, owner, fmt.Sprintf("note %d", i))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := uc.Get(ctx, c.ID, owner)
	require.NoError(t, err)
	assert.Len(t, got.Notes, n)
}

func TestListNotes(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	uc := newUseCase(t, app.WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))

	first, err := uc.Create(ctx, owner, draft("C1", "F1"))
	require.NoError(t, err)
	second, err := uc.Create(ctx, owner, draft("C2", "F2"))
	require.NoError(t, err)
	foreign, err := uc.Create(ctx, stranger, draft("C3", "F3"))
	require.NoError(t, err)

	_, err = uc.AppendNote(ctx, first.ID, owner, "oldest")
	require.NoError(t, err)
	_, err = uc.AppendNote(ctx, second.ID, owner, "middle")
	require.NoError(t, err)
	_, err = uc.AppendNote(ctx, first.ID, owner, "newest")
	require.NoError(t, err)
	_, err = uc.AppendNote(ctx, foreign.ID, stranger, "foreign")
	require.NoError(t, err)

	views, err := uc.ListNotes(ctx, owner)
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, "newest", views[0].Content)
	assert.Equal(t, first.ID, views[0].CaseID)
	assert.Equal(t, "F1", views[0].FileNumber)
	assert.Equal(t, "middle", views[1].Content)
	assert.Equal(t, "C2", views[1].CourtName)
	assert.Equal(t, "oldest", views[2].Content)

	empty, err := uc.ListNotes(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestEndToEndCaseLifecycle(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	created, err := uc.Create(ctx, owner, entities.CaseDraft{
		CourtName: "C1", FileNumber: "F1", Parties: "P", TarafAdi: "D", CaseStatus: "S",
	})
	require.NoError(t, err)

	list, err := uc.ListByOwner(ctx, owner, entities.ListQuery{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created, list[0])

	_, err = uc.Patch(ctx, created.ID, owner, entities.CasePatch{CaseStatus: ptr("Closed")})
	require.NoError(t, err)

	got, err := uc.Get(ctx, created.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "Closed", got.CaseStatus)
	assert.Equal(t, "F1", got.FileNumber)
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookmodel "library-backend/internal/domains/book/model"
	bookrepo "library-backend/internal/domains/book/repository"
	readermodel "library-backend/internal/domains/reader/model"
	readerrepo "library-backend/internal/domains/reader/repository"
	"library-backend/internal/domains/reservation/model"
	"library-backend/internal/infrastructure/queue"
	"library-backend/internal/shared/pagination"
)

type fakeReaderRepo struct {
	readerrepo.RepositoryInterface
	readers map[uuid.UUID]*readermodel.Reader
}

func (f *fakeReaderRepo) GetByID(_ context.Context, id uuid.UUID) (*readermodel.Reader, error) {
	r, ok := f.readers[id]
	if !ok {
		return nil, readermodel.ErrReaderNotFound
	}
	return r, nil
}

type fakeBookRepo struct {
	bookrepo.RepositoryInterface
	books map[uuid.UUID]*bookmodel.Book
}

func (f *fakeBookRepo) GetByID(_ context.Context, id uuid.UUID) (*bookmodel.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, bookmodel.ErrBookNotFound
	}
	return b, nil
}

type fakeReservationRepo struct {
	rows map[uuid.UUID]*model.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{rows: make(map[uuid.UUID]*model.Reservation)}
}

func (f *fakeReservationRepo) Create(_ context.Context, rv *model.Reservation) (*model.Reservation, error) {
	stored := *rv
	stored.ID = uuid.New()
	f.rows[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Reservation, error) {
	rv, ok := f.rows[id]
	if !ok {
		return nil, model.ErrReservationNotFound
	}
	out := *rv
	return &out, nil
}

func (f *fakeReservationRepo) GetAll(_ context.Context, _ pagination.Params) ([]model.Reservation, int64, error) {
	all := make([]model.Reservation, 0, len(f.rows))
	for _, rv := range f.rows {
		all = append(all, *rv)
	}
	return all, int64(len(all)), nil
}

func (f *fakeReservationRepo) GetByReader(_ context.Context, readerID uuid.UUID, _ pagination.Params) ([]model.Reservation, int64, error) {
	var out []model.Reservation
	for _, rv := range f.rows {
		if rv.ReaderID == readerID {
			out = append(out, *rv)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to string) (*model.Reservation, error) {
	rv, ok := f.rows[id]
	if !ok {
		return nil, model.ErrReservationNotFound
	}
	if rv.Status != from {
		return nil, model.ErrInvalidTransition
	}
	rv.Status = to
	out := *rv
	return &out, nil
}

func (f *fakeReservationRepo) ExpireDue(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, rv := range f.rows {
		if rv.Status == model.StatusPending && rv.ExpiresAt.Before(now) {
			rv.Status = model.StatusExpired
			n++
		}
	}
	return n, nil
}

func (f *fakeReservationRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.rows[id]; !ok {
		return model.ErrReservationNotFound
	}
	delete(f.rows, id)
	return nil
}

// recordingNotifier ghi lại payload, có thể giả lập queue lỗi.
type recordingNotifier struct {
	payloads []queue.ReservationNotificationPayload
	err      error
}

func (n *recordingNotifier) NotifyReservationCreated(_ context.Context, payload queue.ReservationNotificationPayload) error {
	if n.err != nil {
		return n.err
	}
	n.payloads = append(n.payloads, payload)
	return nil
}

func setup() (ServiceInterface, *fakeReservationRepo, *recordingNotifier, uuid.UUID, uuid.UUID) {
	readerID := uuid.New()
	bookID := uuid.New()

	readers := &fakeReaderRepo{readers: map[uuid.UUID]*readermodel.Reader{
		readerID: {ID: readerID, FullName: "Trần Văn An"},
	}}
	books := &fakeBookRepo{books: map[uuid.UUID]*bookmodel.Book{
		bookID: {ID: bookID, Title: "Dế Mèn Phiêu Lưu Ký"},
	}}

	repo := newFakeReservationRepo()
	notifier := &recordingNotifier{}
	return NewReservationService(repo, readers, books, notifier), repo, notifier, readerID, bookID
}

func TestCreate_DefaultsExpiryAndNotifies(t *testing.T) {
	ctx := context.Background()
	svc, _, notifier, readerID, bookID := setup()

	before := time.Now()
	created, err := svc.Create(ctx, &model.CreateReservationRequest{ReaderID: readerID, BookID: bookID})
	require.NoError(t, err)

	assert.Equal(t, model.StatusPending, created.Status)
	// ExpiresAt mặc định 72h sau reserved_at
	assert.WithinDuration(t, before.Add(defaultHoldDuration), created.ExpiresAt, 5*time.Second)

	require.Len(t, notifier.payloads, 1)
	assert.Equal(t, created.ID, notifier.payloads[0].ReservationID)
}

func TestCreate_QueueFailureDoesNotRollBack(t *testing.T) {
	ctx := context.Background()
	svc, repo, notifier, readerID, bookID := setup()
	notifier.err = errors.New("redis down")

	created, err := svc.Create(ctx, &model.CreateReservationRequest{ReaderID: readerID, BookID: bookID})
	require.NoError(t, err)

	// Reservation vẫn được persist dù enqueue thất bại
	_, ok := repo.rows[created.ID]
	assert.True(t, ok)
}

func TestCreate_UnknownReaderFails(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, bookID := setup()

	_, err := svc.Create(ctx, &model.CreateReservationRequest{ReaderID: uuid.New(), BookID: bookID})
	assert.ErrorIs(t, err, readermodel.ErrReaderNotFound)
}

func TestFulfill_ThenCancelConflicts(t *testing.T) {
	ctx := context.Background()
	svc, _, _, readerID, bookID := setup()

	created, err := svc.Create(ctx, &model.CreateReservationRequest{ReaderID: readerID, BookID: bookID})
	require.NoError(t, err)

	fulfilled, err := svc.Fulfill(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusFulfilled, fulfilled.Status)

	// Row không còn pending, transition thứ hai bị chặn
	_, err = svc.Cancel(ctx, created.ID)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
}

func TestFulfill_MissingRowReturnsNotFound(t *testing.T) {
	svc, _, _, _, _ := setup()
	_, err := svc.Fulfill(context.Background(), uuid.New())
	assert.ErrorIs(t, err, model.ErrReservationNotFound)
}

func TestExpireDue_SweepsOnlyOverduePending(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, readerID, bookID := setup()

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	overdue, err := svc.Create(ctx, &model.CreateReservationRequest{ReaderID: readerID, BookID: bookID, ExpiresAt: &past})
	require.NoError(t, err)
	active, err := svc.Create(ctx, &model.CreateReservationRequest{ReaderID: readerID, BookID: bookID, ExpiresAt: &future})
	require.NoError(t, err)

	n, err := svc.ExpireDue(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.Equal(t, model.StatusExpired, repo.rows[overdue.ID].Status)
	assert.Equal(t, model.StatusPending, repo.rows[active.ID].Status)
}

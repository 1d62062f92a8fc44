package order

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sajjplace/storefront/internal/storage/kv"
)

type mockRemote struct {
	orders  []Order
	listErr error
	updErr  error
	delErr  error

	updated []string
	deleted []string
}

func (m *mockRemote) List(context.Context) ([]Order, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.orders, nil
}

func (m *mockRemote) Update(_ context.Context, id string, p Patch) error {
	if m.updErr != nil {
		return m.updErr
	}
	m.updated = append(m.updated, id)
	for i := range m.orders {
		if m.orders[i].ID == id {
			p.Apply(&m.orders[i])
			return nil
		}
	}
	return ErrNotFound
}

func (m *mockRemote) Delete(_ context.Context, id string) error {
	if m.delErr != nil {
		return m.delErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

var errDown = errors.New("backend down")

func TestAdminService_ListMergesRemoteAndLocal(t *testing.T) {
	now := time.Now().Truncate(time.Millisecond)
	remote := &mockRemote{orders: []Order{sampleOrder("o_1", now)}}

	local := NewKVLog(kv.NewMemory())
	offline := sampleOrder("o_1", now)
	offline.Payment.Paid = true
	require.NoError(t, local.Append(offline))
	require.NoError(t, local.Append(sampleOrder("o_2", now.Add(time.Minute))))

	svc := NewAdminService(remote, local)
	orders, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o_2", orders[0].ID)
	assert.True(t, orders[1].Payment.Paid)
}

func TestAdminService_ListFallsBackToLocal(t *testing.T) {
	remote := &mockRemote{listErr: errDown}
	local := NewKVLog(kv.NewMemory())
	require.NoError(t, local.Append(sampleOrder("o_1", time.Now())))

	svc := NewAdminService(remote, local)
	orders, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o_1", orders[0].ID)
}

func TestAdminService_MarkPaidUpdatesBothSides(t *testing.T) {
	now := time.Now()
	remote := &mockRemote{orders: []Order{sampleOrder("o_1", now)}}
	local := NewKVLog(kv.NewMemory())
	require.NoError(t, local.Append(sampleOrder("o_1", now)))

	svc := NewAdminService(remote, local)
	require.NoError(t, svc.MarkPaid(context.Background(), "o_1"))

	assert.True(t, remote.orders[0].Payment.Paid)
	logged, err := local.List()
	require.NoError(t, err)
	assert.True(t, logged[0].Payment.Paid)
}

func TestAdminService_MarkPaidSurvivesRemoteFailure(t *testing.T) {
	remote := &mockRemote{updErr: errDown}
	local := NewKVLog(kv.NewMemory())
	require.NoError(t, local.Append(sampleOrder("o_1", time.Now())))

	svc := NewAdminService(remote, local)
	require.NoError(t, svc.MarkPaid(context.Background(), "o_1"))

	logged, err := local.List()
	require.NoError(t, err)
	assert.True(t, logged[0].Payment.Paid)
}

func TestAdminService_PatchMissingEverywhere(t *testing.T) {
	remote := &mockRemote{updErr: errDown}
	local := NewKVLog(kv.NewMemory())

	svc := NewAdminService(remote, local)
	err := svc.MarkDelivered(context.Background(), "o_ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAdminService_Delete(t *testing.T) {
	now := time.Now()
	remote := &mockRemote{orders: []Order{sampleOrder("o_1", now)}}
	local := NewKVLog(kv.NewMemory())
	require.NoError(t, local.Append(sampleOrder("o_1", now)))

	svc := NewAdminService(remote, local)
	require.NoError(t, svc.Delete(context.Background(), "o_1"))

	assert.Equal(t, []string{"o_1"}, remote.deleted)
	logged, err := local.List()
	require.NoError(t, err)
	assert.Empty(t, logged)
}

func TestKVLog_AppendIsIdempotentByID(t *testing.T) {
	local := NewKVLog(kv.NewMemory())
	o := sampleOrder("o_1", time.Now())
	require.NoError(t, local.Append(o))

	o.Notes = "updated"
	require.NoError(t, local.Append(o))

	logged, err := local.List()
	require.NoError(t, err)
	require.Len(t, logged, 1)
	assert.Equal(t, "updated", logged[0].Notes)
}

func TestKVLog_UpdateAndDelete(t *testing.T) {
	local := NewKVLog(kv.NewMemory())
	require.NoError(t, local.Append(sampleOrder("o_1", time.Now())))

	require.NoError(t, local.Update("o_1", MarkPaid()))
	require.ErrorIs(t, local.Update("o_ghost", MarkPaid()), ErrNotFound)

	require.NoError(t, local.Delete("o_1"))
	require.ErrorIs(t, local.Delete("o_1"), ErrNotFound)
}

func TestKVLog_CorruptLogReadsAsEmpty(t *testing.T) {
	backend := kv.NewMemory()
	require.NoError(t, backend.Set("orders_log", []byte("[{broken")))

	local := NewKVLog(backend)
	logged, err := local.List()
	require.NoError(t, err)
	assert.Empty(t, logged)
}

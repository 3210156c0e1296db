package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"cafeteria/internal/core/application/usecases/commands"
	"cafeteria/internal/core/application/usecases/queries"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRelayer struct{ mock.Mock }

func (m *MockRelayer) Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type MockRelayRecorder struct{ mock.Mock }

func (m *MockRelayRecorder) OutboxRelayed(count int, failed bool) {
	m.Called(count, failed)
}

type MockBacklogReader struct{ mock.Mock }

func (m *MockBacklogReader) Handle(ctx context.Context, query queries.GetOrderBacklogQuery) (map[order.Status]int64, error) {
	args := m.Called(ctx, query)
	backlog, _ := args.Get(0).(map[order.Status]int64)
	return backlog, args.Error(1)
}

type MockBacklogRecorder struct{ mock.Mock }

func (m *MockBacklogRecorder) SetBacklog(counts map[string]int64) {
	m.Called(counts)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewOutboxRelayJob_RejectsBatchSize(t *testing.T) {
	_, err := jobs.NewOutboxRelayJob(&MockRelayer{}, 0, nil, discardLogger())
	require.Error(t, err)

	_, err = jobs.NewOutboxRelayJob(&MockRelayer{}, 1001, nil, discardLogger())
	require.Error(t, err)
}

func TestOutboxRelayJob_Run(t *testing.T) {
	relayer := &MockRelayer{}
	recorder := &MockRelayRecorder{}

	relayer.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RelayOutboxCommand) bool {
		return cmd.BatchSize() == 50
	})).Return(3, nil).Once()
	recorder.On("OutboxRelayed", 3, false).Once()

	job, err := jobs.NewOutboxRelayJob(relayer, 50, recorder, discardLogger())
	require.NoError(t, err)

	job.Run(context.Background())

	relayer.AssertExpectations(t)
	recorder.AssertExpectations(t)
}

func TestOutboxRelayJob_Run_RecordsFailure(t *testing.T) {
	relayer := &MockRelayer{}
	recorder := &MockRelayRecorder{}

	relayer.On("Handle", mock.Anything, mock.Anything).Return(1, errors.New("channel closed")).Once()
	recorder.On("OutboxRelayed", 1, true).Once()

	job, err := jobs.NewOutboxRelayJob(relayer, 10, recorder, discardLogger())
	require.NoError(t, err)

	job.Run(context.Background())

	recorder.AssertExpectations(t)
}

func TestOutboxRelayJob_Run_WithoutRecorder(t *testing.T) {
	relayer := &MockRelayer{}
	relayer.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Once()

	job, err := jobs.NewOutboxRelayJob(relayer, 10, nil, discardLogger())
	require.NoError(t, err)

	assert.NotPanics(t, func() { job.Run(context.Background()) })
	relayer.AssertExpectations(t)
}

func TestOrderBacklogJob_Run(t *testing.T) {
	reader := &MockBacklogReader{}
	recorder := &MockBacklogRecorder{}

	reader.On("Handle", mock.Anything, mock.Anything).Return(map[order.Status]int64{
		order.Pending:   4,
		order.Ready:     1,
		order.Delivered: 0,
		order.Cancelled: 2,
	}, nil).Once()
	recorder.On("SetBacklog", map[string]int64{
		"Pending":   4,
		"Ready":     1,
		"Delivered": 0,
		"Cancelled": 2,
	}).Once()

	jobs.NewOrderBacklogJob(reader, recorder, discardLogger()).Run(context.Background())

	reader.AssertExpectations(t)
	recorder.AssertExpectations(t)
}

func TestOrderBacklogJob_Run_KeepsGaugeOnFailure(t *testing.T) {
	reader := &MockBacklogReader{}
	recorder := &MockBacklogRecorder{}

	reader.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset")).Once()

	jobs.NewOrderBacklogJob(reader, recorder, discardLogger()).Run(context.Background())

	recorder.AssertNotCalled(t, "SetBacklog", mock.Anything)
}

func TestJobManager_StartAndStop(t *testing.T) {
	reader := &MockBacklogReader{}
	reader.On("Handle", mock.Anything, mock.Anything).Return(map[order.Status]int64{}, nil).Maybe()
	recorder := &MockBacklogRecorder{}
	recorder.On("SetBacklog", mock.Anything).Maybe()

	relayer := &MockRelayer{}
	relayer.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Maybe()
	relay, err := jobs.NewOutboxRelayJob(relayer, 10, nil, discardLogger())
	require.NoError(t, err)

	manager := jobs.NewJobManager(relay, jobs.NewOrderBacklogJob(reader, recorder, discardLogger()))

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}

func TestJobManager_WithoutRelay(t *testing.T) {
	reader := &MockBacklogReader{}
	reader.On("Handle", mock.Anything, mock.Anything).Return(map[order.Status]int64{}, nil).Maybe()
	recorder := &MockBacklogRecorder{}
	recorder.On("SetBacklog", mock.Anything).Maybe()

	manager := jobs.NewJobManager(nil, jobs.NewOrderBacklogJob(reader, recorder, discardLogger()))

	require.NoError(t, manager.StartAll())
	assert.NotPanics(t, manager.StopAll)
}

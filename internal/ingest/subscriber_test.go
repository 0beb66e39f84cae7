package ingest_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openaudio/discovery-indexer/internal/ingest"
	"github.com/openaudio/discovery-indexer/internal/mocks"
)

// testSubscriberMocks contains all the mocks needed for testing the subscriber
type testSubscriberMocks struct {
	ctrl      *gomock.Controller
	natsJS    *mocks.MockNatsJetStream
	natsConn  *mocks.MockNatsConn
	jetStream *mocks.MockJetStream
	store     *mocks.MockStore
}

func setupTestSubscriber(t *testing.T) *testSubscriberMocks {
	ctrl := gomock.NewController(t)

	return &testSubscriberMocks{
		ctrl:      ctrl,
		natsJS:    mocks.NewMockNatsJetStream(ctrl),
		natsConn:  mocks.NewMockNatsConn(ctrl),
		jetStream: mocks.NewMockJetStream(ctrl),
		store:     mocks.NewMockStore(ctrl),
	}
}

func testSubscriberConfig() ingest.Config {
	return ingest.Config{
		URL:            "nats://localhost:4222",
		StreamName:     "BLOCKS",
		Subject:        "blocks.decoded",
		ConsumerName:   "discovery-indexer",
		MaxReconnects:  10,
		ReconnectWait:  1 * time.Second,
		ConnectionName: "test-indexer",
		AckWaitTimeout: 30 * time.Second,
		MaxDeliver:     3,
	}
}

func TestSubscriber_NewSubscriber_Success(t *testing.T) {
	tm := setupTestSubscriber(t)
	defer tm.ctrl.Finish()

	cfg := testSubscriberConfig()
	tm.natsJS.
		EXPECT().
		Connect(cfg.URL, gomock.Any()).
		Return(tm.natsConn, tm.jetStream, nil)

	runner := ingest.NewRunner(tm.store, &stubProcessor{}, testLockKey)
	sub, err := ingest.NewSubscriber(cfg, tm.natsJS, runner)
	require.NoError(t, err)
	assert.NotNil(t, sub)
}

func TestSubscriber_NewSubscriber_ConnectError(t *testing.T) {
	tm := setupTestSubscriber(t)
	defer tm.ctrl.Finish()

	cfg := testSubscriberConfig()
	tm.natsJS.
		EXPECT().
		Connect(cfg.URL, gomock.Any()).
		Return(nil, nil, assert.AnError)

	runner := ingest.NewRunner(tm.store, &stubProcessor{}, testLockKey)
	sub, err := ingest.NewSubscriber(cfg, tm.natsJS, runner)
	require.Error(t, err)
	assert.Nil(t, sub)
}

// startSubscriber runs the subscriber and captures the message handler the
// consumer was given.
func startSubscriber(t *testing.T, tm *testSubscriberMocks, ctx context.Context, runner *ingest.Runner) ingest.MessageHandler {
	t.Helper()

	cfg := testSubscriberConfig()
	tm.natsJS.
		EXPECT().
		Connect(cfg.URL, gomock.Any()).
		Return(tm.natsConn, tm.jetStream, nil)

	sub, err := ingest.NewSubscriber(cfg, tm.natsJS, runner)
	require.NoError(t, err)

	consumer := mocks.NewMockNatsConsumer(tm.ctrl)
	consumeContext := mocks.NewMockConsumeContext(tm.ctrl)

	tm.jetStream.EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), cfg.StreamName, gomock.Any()).
		Return(consumer, nil)
	consumer.EXPECT().
		Info(gomock.Any()).
		Return(&jetstream.ConsumerInfo{Name: cfg.ConsumerName}, nil)

	handlerCh := make(chan ingest.MessageHandler, 1)
	consumer.EXPECT().
		Consume(gomock.Any()).
		DoAndReturn(func(handler ingest.MessageHandler, opts ...jetstream.PullConsumeOpt) (ingest.ConsumeContext, error) {
			handlerCh <- handler
			return consumeContext, nil
		})
	consumeContext.EXPECT().Stop().AnyTimes()

	go func() {
		_ = sub.Run(ctx)
	}()

	select {
	case handler := <-handlerCh:
		return handler
	case <-time.After(2 * time.Second):
		t.Fatal("consumer was never started")
		return nil
	}
}

func TestSubscriber_AcksCommittedBlocks(t *testing.T) {
	tm := setupTestSubscriber(t)
	defer tm.ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := ingest.NewRunner(tm.store, &stubProcessor{}, testLockKey)
	handler := startSubscriber(t, tm, ctx, runner)

	msg := mocks.NewMockJetStreamMessage(tm.ctrl)
	msg.EXPECT().Data().Return([]byte(`{"number":100,"hash":"0xblockhash","events":[]}`)).MinTimes(1)
	msg.EXPECT().Metadata().Return(&jetstream.MsgMetadata{NumDelivered: 1}, nil).MinTimes(1)

	// The cursor is already past this block: the runner drops it and the
	// message is acked without processing.
	acked := make(chan struct{})
	tm.store.EXPECT().GetBlockCursor(gomock.Any()).Return(int64(100), nil)
	msg.EXPECT().Ack().DoAndReturn(func() error {
		close(acked)
		return nil
	})

	handler(msg)

	select {
	case <-acked:
	case <-time.After(2 * time.Second):
		t.Fatal("message was never acked")
	}
}

func TestSubscriber_NaksWhenLockHeld(t *testing.T) {
	tm := setupTestSubscriber(t)
	defer tm.ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := ingest.NewRunner(tm.store, &stubProcessor{}, testLockKey)
	handler := startSubscriber(t, tm, ctx, runner)

	msg := mocks.NewMockJetStreamMessage(tm.ctrl)
	msg.EXPECT().Data().Return([]byte(`{"number":100,"hash":"0xblockhash","events":[]}`)).MinTimes(1)
	msg.EXPECT().Metadata().Return(&jetstream.MsgMetadata{NumDelivered: 1}, nil).MinTimes(1)

	naked := make(chan struct{})
	tm.store.EXPECT().GetBlockCursor(gomock.Any()).Return(int64(-1), nil)
	tm.store.EXPECT().TryAdvisoryLock(gomock.Any(), testLockKey).Return(false, nil)
	msg.EXPECT().Nak().DoAndReturn(func() error {
		close(naked)
		return nil
	})

	handler(msg)

	select {
	case <-naked:
	case <-time.After(2 * time.Second):
		t.Fatal("message was never naked")
	}
}

func TestSubscriber_TerminatesUnparseableMessages(t *testing.T) {
	tm := setupTestSubscriber(t)
	defer tm.ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := ingest.NewRunner(tm.store, &stubProcessor{}, testLockKey)
	handler := startSubscriber(t, tm, ctx, runner)

	msg := mocks.NewMockJetStreamMessage(tm.ctrl)
	msg.EXPECT().Data().Return([]byte(`not json`)).MinTimes(1)
	msg.EXPECT().Metadata().Return(nil, assert.AnError).AnyTimes()

	termed := make(chan struct{})
	msg.EXPECT().Term().DoAndReturn(func() error {
		close(termed)
		return nil
	})

	handler(msg)

	select {
	case <-termed:
	case <-time.After(2 * time.Second):
		t.Fatal("message was never terminated")
	}
}

func TestSubscriber_Close(t *testing.T) {
	tm := setupTestSubscriber(t)
	defer tm.ctrl.Finish()

	cfg := testSubscriberConfig()
	tm.natsJS.
		EXPECT().
		Connect(cfg.URL, gomock.Any()).
		Return(tm.natsConn, tm.jetStream, nil)
	tm.natsConn.EXPECT().Close()

	runner := ingest.NewRunner(tm.store, &stubProcessor{}, testLockKey)
	sub, err := ingest.NewSubscriber(cfg, tm.natsJS, runner)
	require.NoError(t, err)

	sub.Close()
}

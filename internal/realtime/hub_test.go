package realtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storehub/commerce-service/internal/domain"
)

type recordingViewer struct {
	pushes chan []domain.Product
}

func newRecordingViewer() *recordingViewer {
	return &recordingViewer{pushes: make(chan []domain.Product, 8)}
}

func (v *recordingViewer) Send(payload interface{}) error {
	products, _ := payload.([]domain.Product)
	v.pushes <- products
	return nil
}

func (v *recordingViewer) receive(t *testing.T) []domain.Product {
	t.Helper()
	select {
	case products := <-v.pushes:
		return products
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a push")
		return nil
	}
}

func (v *recordingViewer) assertNoPush(t *testing.T) {
	t.Helper()
	select {
	case <-v.pushes:
		t.Fatal("unexpected push")
	case <-time.After(50 * time.Millisecond):
	}
}

type failingViewer struct{}

func (v *failingViewer) Send(payload interface{}) error {
	return errors.New("connection gone")
}

func fixedSource(products []domain.Product) ListingSource {
	return func(ctx context.Context) ([]domain.Product, error) {
		return products, nil
	}
}

func TestHubPushesSnapshotOnRegister(t *testing.T) {
	listing := []domain.Product{{ID: "p1", Title: "keyboard"}}
	hub := CreateNewHub(fixedSource(listing))

	viewer := newRecordingViewer()
	hub.Register(context.Background(), viewer)

	assert.Equal(t, listing, viewer.receive(t))
	viewer.assertNoPush(t)
}

func TestHubBroadcastReachesEveryViewer(t *testing.T) {
	listing := []domain.Product{{ID: "p1"}, {ID: "p2"}}
	hub := CreateNewHub(fixedSource(listing))

	first := newRecordingViewer()
	second := newRecordingViewer()
	hub.Register(context.Background(), first)
	hub.Register(context.Background(), second)
	first.receive(t)
	second.receive(t)

	hub.Broadcast(context.Background())

	assert.Equal(t, listing, first.receive(t))
	assert.Equal(t, listing, second.receive(t))
	first.assertNoPush(t)
	second.assertNoPush(t)
}

func TestHubBroadcastSurvivesFailingViewer(t *testing.T) {
	listing := []domain.Product{{ID: "p1"}}
	hub := CreateNewHub(fixedSource(listing))

	hub.Register(context.Background(), &failingViewer{})
	healthy := newRecordingViewer()
	hub.Register(context.Background(), healthy)
	healthy.receive(t)

	hub.Broadcast(context.Background())

	assert.Equal(t, listing, healthy.receive(t))
}

func TestHubUnregisterStopsPushes(t *testing.T) {
	hub := CreateNewHub(fixedSource([]domain.Product{}))

	viewer := newRecordingViewer()
	hub.Register(context.Background(), viewer)
	require.Empty(t, viewer.receive(t))

	hub.Unregister(viewer)
	hub.Broadcast(context.Background())

	viewer.assertNoPush(t)
}

func TestHubSourceFailureSkipsDelivery(t *testing.T) {
	hub := CreateNewHub(func(ctx context.Context) ([]domain.Product, error) {
		return nil, errors.New("store unreachable")
	})

	viewer := newRecordingViewer()
	hub.Register(context.Background(), viewer)
	viewer.assertNoPush(t)

	hub.Broadcast(context.Background())
	viewer.assertNoPush(t)
}

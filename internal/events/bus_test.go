package events

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/UzayAnil/swiftcode/internal/testutil"
)

type BusSuite struct {
	suite.Suite
	bus *Bus
}

func TestBusSuite(t *testing.T) {
	suite.Run(t, new(BusSuite))
}

func (s *BusSuite) SetupTest() {
	s.bus = NewBus(testutil.NopLogger())
}

func (s *BusSuite) TearDownTest() {
	s.bus.Close()
}

func (s *BusSuite) TestPublishReachesSubscriber() {
	ch, cancel := s.bus.Subscribe(TopicGameCreated)
	defer cancel()

	s.bus.Publish(TopicGameCreated, "payload")

	select {
	case e := <-ch:
		s.Equal(TopicGameCreated, e.Topic)
		s.Equal("payload", e.Payload)
	default:
		s.Fail("expected an event")
	}
}

func (s *BusSuite) TestSubscriberOnlyReceivesItsTopics() {
	ch, cancel := s.bus.Subscribe(TopicGameCreated)
	defer cancel()

	s.bus.Publish(TopicGameRemoved, "other")

	select {
	case <-ch:
		s.Fail("received an event for an unsubscribed topic")
	default:
	}
}

func (s *BusSuite) TestMultiTopicSubscription() {
	ch, cancel := s.bus.Subscribe(TopicGameCreated, TopicGameRemoved)
	defer cancel()

	s.bus.Publish(TopicGameCreated, 1)
	s.bus.Publish(TopicGameRemoved, 2)

	s.Len(ch, 2)
}

func (s *BusSuite) TestMultipleSubscribersEachReceive() {
	ch1, cancel1 := s.bus.Subscribe(TopicPlayerUpdated)
	defer cancel1()
	ch2, cancel2 := s.bus.Subscribe(TopicPlayerUpdated)
	defer cancel2()

	s.bus.Publish(TopicPlayerUpdated, "x")

	s.Len(ch1, 1)
	s.Len(ch2, 1)
}

func (s *BusSuite) TestCancelStopsDeliveryAndClosesChannel() {
	ch, cancel := s.bus.Subscribe(TopicGameUpdated)
	cancel()

	s.bus.Publish(TopicGameUpdated, "x")

	_, open := <-ch
	s.False(open)
}

func (s *BusSuite) TestCancelIsIdempotent() {
	_, cancel := s.bus.Subscribe(TopicGameUpdated)
	cancel()
	cancel()
}

func (s *BusSuite) TestFullBufferDropsInsteadOfBlocking() {
	ch, cancel := s.bus.Subscribe(TopicGameUpdated)
	defer cancel()

	// One more than the buffer holds; the publish must not block
	for i := 0; i < subscriberBuffer+1; i++ {
		s.bus.Publish(TopicGameUpdated, i)
	}

	s.Len(ch, subscriberBuffer)
}

func (s *BusSuite) TestPublishAfterCloseIsNoOp() {
	ch, _ := s.bus.Subscribe(TopicGameCreated)
	s.bus.Close()

	s.bus.Publish(TopicGameCreated, "x")

	_, open := <-ch
	s.False(open)
}

func (s *BusSuite) TestCloseIsIdempotent() {
	s.bus.Close()
	s.bus.Close()
}

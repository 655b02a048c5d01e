package events

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

// ScheduleUpdatedEvent tells a device its screen's schedule changed and it
// should re-fetch its manifest.
type ScheduleUpdatedEvent struct {
	Type      string    `json:"type"`
	ScreenID  int       `json:"screen_id"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// MQTTPublisher pushes schedule-change events to per-screen topics.
// Publishing is fire-and-forget: broker errors are logged, never returned.
type MQTTPublisher struct {
	client mqtt.Client
}

func NewMQTTPublisher(brokerURL, clientID string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = func(mqtt.Client) {
		log.Info().Str("broker", brokerURL).Msg("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn().Err(err).Msg("MQTT connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return &MQTTPublisher{client: client}, nil
}

// ScheduleUpdated publishes to screens/<id>/schedule at QoS 1.
func (p *MQTTPublisher) ScheduleUpdated(screenID int, reason string) {
	payload, err := json.Marshal(ScheduleUpdatedEvent{
		Type:      "schedule_updated",
		ScreenID:  screenID,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("could not encode schedule event")
		return
	}

	topic := fmt.Sprintf("screens/%d/schedule", screenID)
	token := p.client.Publish(topic, 1, false, payload)
	token.Wait()
	if token.Error() != nil {
		log.Error().Err(token.Error()).Str("topic", topic).Msg("schedule event publish failed")
		return
	}
	log.Debug().Str("topic", topic).Str("reason", reason).Msg("schedule event published")
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}

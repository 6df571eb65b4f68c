// Package mqtt publishes classification results to the broker feeding
// the analytics side of the application. Publishing is best-effort: a
// broker outage is logged and the classification response is unaffected.
package mqtt

import (
	"context"
	"log/slog"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/goccy/go-json"

	"moodring/internal/domain"
)

type PublisherConfig struct {
	BrokerURL   string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
}

type Publisher struct {
	cfg    PublisherConfig
	client paho.Client
	logger *slog.Logger
}

func NewPublisher(cfg PublisherConfig, logger *slog.Logger) *Publisher {
	return &Publisher{cfg: cfg, logger: logger}
}

func (p *Publisher) Enabled() bool {
	return p != nil && p.cfg.BrokerURL != ""
}

func (p *Publisher) Start(ctx context.Context) error {
	opts := paho.NewClientOptions().
		AddBroker(p.cfg.BrokerURL).
		SetClientID(p.cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true)

	if p.cfg.Username != "" {
		opts.SetUsername(p.cfg.Username)
		opts.SetPassword(p.cfg.Password)
	}

	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		p.logger.Error("mqtt connection lost", "error", err)
	})

	p.client = paho.NewClient(opts)
	if token := p.client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}

	go func() {
		<-ctx.Done()
		p.client.Disconnect(100)
	}()

	return nil
}

// PublishClassification pushes one classified mood to
// {prefix}/mood/classified. Failures are logged and swallowed.
func (p *Publisher) PublishClassification(mood domain.ClassifiedMood) {
	if !p.Enabled() || p.client == nil {
		return
	}

	body, err := json.Marshal(mood)
	if err != nil {
		p.logger.Warn("encode classification event", "error", err)
		return
	}

	topic := TopicMoodClassified(p.cfg.TopicPrefix)
	if token := p.client.Publish(topic, 1, false, body); token.Wait() && token.Error() != nil {
		p.logger.Warn("publish classification event", "topic", topic, "error", token.Error())
		return
	}
	p.logger.Info("classification published", "topic", topic, "id", mood.ID, "primary", mood.Primary)
}

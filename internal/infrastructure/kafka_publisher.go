package infrastructure

import (
	"context"
	"encoding/json"

	"Tenure/config"
	"Tenure/internal/domain/contribution"
	"Tenure/internal/logger"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// KafkaPublisher publica as contribuições confirmadas para consumidores externos.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
}

var _ contribution.Observer = (*KafkaPublisher)(nil)

type contributionMessage struct {
	Mode          string                    `json:"mode"`
	OwnerID       string                    `json:"ownerId"`
	CompanyID     string                    `json:"companyId"`
	GiftAmount    string                    `json:"giftAmount"`
	TotalApplied  string                    `json:"totalApplied"`
	WalletBalance string                    `json:"walletBalance"`
	Allocations   []contribution.Allocation `json:"allocations"`
	OccurredAt    string                    `json:"occurredAt"`
}

// NewKafkaPublisher devolve um publisher inerte quando o Kafka está desabilitado.
func NewKafkaPublisher(cfg *config.Config) (*KafkaPublisher, error) {
	if !cfg.Kafka.Enabled {
		return &KafkaPublisher{topic: cfg.Kafka.ContributionTopic}, nil
	}

	configMap := &kafka.ConfigMap{
		"bootstrap.servers": cfg.Kafka.BootstrapServers,
	}
	if cfg.Kafka.APIKey != "" {
		_ = configMap.SetKey("sasl.username", cfg.Kafka.APIKey)
		_ = configMap.SetKey("sasl.password", cfg.Kafka.APISecret)
		_ = configMap.SetKey("security.protocol", "SASL_SSL")
		_ = configMap.SetKey("sasl.mechanism", "PLAIN")
	}

	producer, err := kafka.NewProducer(configMap)
	if err != nil {
		logger.Error().
			Err(err).
			Str("bootstrap_servers", cfg.Kafka.BootstrapServers).
			Msg("Falha ao inicializar producer Kafka")
		return nil, err
	}

	go drainDeliveryReports(producer)

	logger.Info().
		Str("bootstrap_servers", cfg.Kafka.BootstrapServers).
		Str("topic", cfg.Kafka.ContributionTopic).
		Msg("Producer Kafka inicializado com sucesso")
	return &KafkaPublisher{producer: producer, topic: cfg.Kafka.ContributionTopic}, nil
}

func (p *KafkaPublisher) Enabled() bool {
	return p != nil && p.producer != nil
}

func (p *KafkaPublisher) ContributionCommitted(_ context.Context, event contribution.CommittedEvent) error {
	if !p.Enabled() {
		return nil
	}

	value, err := json.Marshal(contributionMessage{
		Mode:          event.Mode,
		OwnerID:       event.OwnerID.String(),
		CompanyID:     event.CompanyID.String(),
		GiftAmount:    event.GiftAmount.String(),
		TotalApplied:  event.TotalApplied.String(),
		WalletBalance: event.WalletBalance.String(),
		Allocations:   event.Allocations,
		OccurredAt:    event.OccurredAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
	if err != nil {
		return err
	}

	topic := p.topic
	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.OwnerID.String()),
		Value:          value,
	}
	if err := p.producer.Produce(msg, nil); err != nil {
		logger.Error().Err(err).Str("topic", topic).Msg("Falha ao publicar contribuição")
		return err
	}

	logger.Debug().Str("topic", topic).Str("owner_id", event.OwnerID.String()).Msg("Contribuição publicada")
	return nil
}

// Close descarrega mensagens pendentes por até timeoutMs.
func (p *KafkaPublisher) Close(timeoutMs int) {
	if !p.Enabled() {
		return
	}
	if pending := p.producer.Flush(timeoutMs); pending > 0 {
		logger.Warn().Int("pending", pending).Msg("Mensagens Kafka não entregues no encerramento")
	}
	p.producer.Close()
}

func drainDeliveryReports(producer *kafka.Producer) {
	for e := range producer.Events() {
		if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
			logger.Error().
				Err(m.TopicPartition.Error).
				Str("topic", *m.TopicPartition.Topic).
				Msg("Falha na entrega de mensagem Kafka")
		}
	}
}

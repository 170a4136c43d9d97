// Package design describes the system architecture, rendered with "mdl serve".
package design

import (
	. "goa.design/model/dsl"
)

var _ = Design("Todo Tracker", "Tracks todos with due dates and priorities.", func() {
	var System = SoftwareSystem("Todo Tracker", "Creates, queries and completes todos.", func() {
		Container("REST Server", "Todo lifecycle and query API.", "Go, chi", func() {
			Uses("PostgreSQL", "Reads and writes todos", "pgx")
			Uses("Memcached", "Caches individual todos", "gomemcache")
			Uses("Redis", "Caches the todo list", "go-redis")
			Uses("Kafka", "Publishes todo events", "confluent-kafka-go")
			Uses("RabbitMQ", "Publishes todo events", "AMQP")
			Uses("Vault", "Reads secrets", "HTTP")
		})

		Container("Elasticsearch Indexer", "Indexes todo events.", "Go", func() {
			Uses("Kafka", "Consumes todo events", "confluent-kafka-go")
			Uses("RabbitMQ", "Consumes todo events", "AMQP")
			Uses("Elasticsearch", "Indexes todos", "HTTP")
		})

		Container("PostgreSQL", "Stores todos.", "PostgreSQL", func() {
			Tag("database")
		})

		Container("Memcached", "Todo cache.", "Memcached", func() {
			Tag("database")
		})

		Container("Redis", "Todo list cache.", "Redis", func() {
			Tag("database")
		})

		Container("Elasticsearch", "Todo search index.", "Elasticsearch", func() {
			Tag("database")
		})

		Container("Kafka", "Event stream.", "Kafka", func() {
			Tag("queue")
		})

		Container("RabbitMQ", "Event exchange.", "RabbitMQ", func() {
			Tag("queue")
		})

		Container("Vault", "Secret storage.", "Vault")
	})

	Person("User", "Someone tracking todos.", func() {
		Uses(System, "Manages todos", "HTTP")
	})

	Views(func() {
		SystemContextView(System, "SystemContext", "System context diagram.", func() {
			AddAll()
			AutoLayout(RankLeftRight)
		})

		ContainerView(System, "Containers", "Container diagram.", func() {
			AddAll()
			AutoLayout(RankLeftRight)
		})

		Styles(func() {
			ElementStyle("database", func() {
				Shape(ShapeCylinder)
			})

			ElementStyle("queue", func() {
				Shape(ShapePipe)
			})
		})
	})
})

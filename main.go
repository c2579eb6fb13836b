package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	orchestratorx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/agents/orchestrator"
	specialistx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/agents/specialist"
	classifierx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/classifier"
	contractx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/contract"
	storex "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/store"
	toolx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/tool"
	configx "github.com/tanpawarit/Courier-Multi-Agent-Support/pkg/config"
	_ "github.com/tanpawarit/Courier-Multi-Agent-Support/pkg/logger/autoload"
	notifyx "github.com/tanpawarit/Courier-Multi-Agent-Support/pkg/notify"
)

type AppConfig struct {
	NotifyURL         string        `envconfig:"NOTIFY_URL"`
	SpecialistTimeout time.Duration `envconfig:"SPECIALIST_TIMEOUT"`
}

type scenario struct {
	title  string
	query  string
	caller contractx.CallerContext
}

func main() {
	ctx := context.Background()

	appCfg := configx.MustNew[AppConfig]("")
	storeCfg := configx.MustNew[storex.Config]("STORE")

	db, err := storex.Open(*storeCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open backing store")
	}
	defer db.Close()

	if err := storex.CreateSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("create schema")
	}
	if err := storex.Seed(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("seed data")
	}

	tools := toolx.New(db)
	registry, err := specialistx.NewRegistry(tools)
	if err != nil {
		log.Fatal().Err(err).Msg("build specialist registry")
	}

	opts := []orchestratorx.Option{}
	if appCfg.SpecialistTimeout > 0 {
		opts = append(opts, orchestratorx.WithSpecialistTimeout(appCfg.SpecialistTimeout))
	}
	if appCfg.NotifyURL != "" {
		notifyCfg := configx.MustNew[notifyx.Config]("NOTIFY")
		opts = append(opts, orchestratorx.WithNotifier(notifyx.MustNew(*notifyCfg)))
	}

	orch, err := orchestratorx.New(classifierx.New(), registry, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("build orchestrator")
	}

	customer1 := int64(1)
	customer2 := int64(2)
	customer4 := int64(4)

	scenarios := []scenario{
		{
			title: "Simple Data Query (Task Allocation)",
			query: "Get customer information for ID 5",
		},
		{
			title:  "Coordinated Support Query (Negotiation)",
			query:  "I'm customer 1 and need help upgrading my account",
			caller: contractx.CallerContext{CustomerID: &customer1},
		},
		{
			title: "Complex Analysis Query (Multi-Step Coordination)",
			query: "Show me all active customers who have open tickets",
		},
		{
			title:  "Escalation Query (High Priority)",
			query:  "I've been charged twice, please refund immediately!",
			caller: contractx.CallerContext{CustomerID: &customer2},
		},
		{
			title:  "Multi-Intent Query (Sequential Sub-Tasks)",
			query:  "Update my email to newemail@test.com and show my ticket history",
			caller: contractx.CallerContext{CustomerID: &customer4},
		},
	}

	for i, s := range scenarios {
		fmt.Printf("\n=== Scenario %d: %s ===\n", i+1, s.title)
		fmt.Printf("Query: %q\n\n", s.query)

		resp := orch.HandleQuery(ctx, s.query, s.caller)

		fmt.Printf("pattern=%s success=%t escalated=%t steps=%d\n\n",
			resp.PatternUsed, resp.Success, resp.Escalated, len(resp.Trace))
		fmt.Println(resp.Text)
		for _, e := range resp.Errors {
			fmt.Printf("error [%s] %s\n", e.Kind, e.Message)
		}
	}
}

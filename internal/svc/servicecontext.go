package svc

import (
	"log"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	cachekeys "clinicode-api/internal/cache"
	"clinicode-api/internal/config"
	"clinicode-api/internal/model"
	"clinicode-api/internal/session"
	"clinicode-api/pkg/agent"
	"clinicode-api/pkg/confkit"
	"clinicode-api/pkg/journal"
	"clinicode-api/pkg/suggest"
)

type ServiceContext struct {
	Config config.Config

	AgentClient  agent.ChatClient
	Suggester    suggest.Suggester
	PromptDigest string

	Sessions *session.Store

	// Optional collaborators; nil when not configured.
	Journal          *journal.Writer
	SubmissionsModel model.SubmissionsModel
}

func NewServiceContext(c config.Config) *ServiceContext {
	if c.Agent.Value == nil {
		log.Fatal("agent config is required (Agent.File in the main config)")
	}

	client, err := agent.NewClient(c.Agent.Value)
	if err != nil {
		log.Fatalf("failed to init agent client: %v", err)
	}

	suggestCfg := c.Suggest.Value
	if suggestCfg == nil {
		suggestCfg = suggest.DefaultConfig()
	}
	suggester, err := suggest.NewSuggester(suggestCfg, client)
	if err != nil {
		log.Fatalf("failed to init suggester: %v", err)
	}

	ttl := cachekeys.NewTTLSet(c.TTL)
	sessions, err := session.NewStore(ttl.SessionTTL())
	if err != nil {
		log.Fatalf("failed to init session store: %v", err)
	}

	svc := &ServiceContext{
		Config:       c,
		AgentClient:  client,
		Suggester:    suggester,
		PromptDigest: suggester.PromptDigest(),
		Sessions:     sessions,
	}

	if c.JournalDir != "" {
		w, err := journal.NewWriter(confkit.ResolvePath(c.BaseDir(), c.JournalDir))
		if err != nil {
			log.Fatalf("failed to init journal: %v", err)
		}
		svc.Journal = w
	}

	if c.Postgres.DSN != "" {
		conn := sqlx.NewSqlConn("pgx", c.Postgres.DSN)
		svc.SubmissionsModel = model.NewSubmissionsModel(conn)
	}

	return svc
}

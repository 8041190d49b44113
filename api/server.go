package api

import (
	"fmt"

	"github.com/Sanenelisiwe1975/Baxela/api/controllers"
	"github.com/Sanenelisiwe1975/Baxela/api/transport"
	"github.com/Sanenelisiwe1975/Baxela/chain"
	"github.com/Sanenelisiwe1975/Baxela/ipfs"
	"github.com/Sanenelisiwe1975/Baxela/logging"
	"github.com/Sanenelisiwe1975/Baxela/storage"
	"github.com/gin-gonic/gin"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

type storages struct {
	incidents  storage.IncidentStorage
	voters     storage.VoterStorage
	candidates storage.CandidateStorage
	elections  storage.ElectionStorage
	votes      storage.VoteStorage
}

func (s *Server) buildStorages() storages {
	if s.config.Backend == "mysql" {
		db, err := storage.OpenMySQL(s.config.MySQLDSN)
		if err != nil {
			logging.Log.Errorf("failed to open mysql storage: %v", err)
			panic("failed to open mysql storage")
		}
		return storages{
			incidents:  &storage.GormIncidentStorage{DB: db},
			voters:     &storage.GormVoterStorage{DB: db},
			candidates: &storage.GormCandidateStorage{DB: db},
			elections:  &storage.GormElectionStorage{DB: db},
			votes:      &storage.GormVoteStorage{DB: db},
		}
	}

	return storages{
		incidents:  storage.NewMemoryIncidentStorage(),
		voters:     storage.NewMemoryVoterStorage(),
		candidates: storage.NewMemoryCandidateStorage(),
		elections:  storage.NewMemoryElectionStorage(),
		votes:      storage.NewMemoryVoteStorage(),
	}
}

func (s *Server) Start() {
	r := transport.NewRouter(gin.DebugMode)

	stores := s.buildStorages()

	pinner := ipfs.NewClient(ipfs.Config{
		APIKey:     s.config.PinningConfig.APIKey,
		APISecret:  s.config.PinningConfig.APISecret,
		BaseURL:    s.config.PinningConfig.BaseURL,
		GatewayURL: s.config.PinningConfig.GatewayURL,
	})
	payments := &chain.MockPayments{}

	adminPolicy := transport.NewAdminPolicy(s.config.AdminConfig.Wallets, s.config.AdminConfig.JWTSecret)
	rules := controllers.NewEligibilityRules(s.config.EligibilityConfig.Country, s.config.EligibilityConfig.MunicipalStates)

	// Register controllers
	incidentController := controllers.NewIncidentController(stores.incidents, pinner, adminPolicy)
	incidentController.RegisterRoutes(r)
	voterController := controllers.NewVoterController(stores.voters, stores.elections, rules, adminPolicy)
	voterController.RegisterRoutes(r)
	candidateController := controllers.NewCandidateController(stores.candidates)
	candidateController.RegisterRoutes(r)
	electionController := controllers.NewElectionController(stores.elections)
	electionController.RegisterRoutes(r)
	voteController := controllers.NewVoteController(stores.votes, stores.elections, stores.candidates, payments)
	voteController.RegisterRoutes(r)
	adminController := controllers.NewAdminController(stores.elections, stores.candidates, stores.votes, adminPolicy)
	adminController.RegisterRoutes(r)
	authController := controllers.NewAuthController(adminPolicy)
	authController.RegisterRoutes(r)
	ipfsController := controllers.NewIPFSController(pinner)
	ipfsController.RegisterRoutes(r)

	logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", s.config.Port))
	if err := r.Run(fmt.Sprintf(":%d", s.config.Port)); err != nil {
		logging.Log.Fatalf("Failed to run server: %v", err)
	}
}

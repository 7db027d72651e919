// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"strings"

	feesfeature "github.com/dalemusser/coachhub/internal/app/features/fees"
	groupsfeature "github.com/dalemusser/coachhub/internal/app/features/groups"
	healthfeature "github.com/dalemusser/coachhub/internal/app/features/health"
	livefeature "github.com/dalemusser/coachhub/internal/app/features/live"
	loginfeature "github.com/dalemusser/coachhub/internal/app/features/login"
	messagesfeature "github.com/dalemusser/coachhub/internal/app/features/messages"
	profilefeature "github.com/dalemusser/coachhub/internal/app/features/profile"
	studentsfeature "github.com/dalemusser/coachhub/internal/app/features/students"
	uploadsfeature "github.com/dalemusser/coachhub/internal/app/features/uploads"
	"github.com/dalemusser/coachhub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
// WAFFLE calls it after configuration, the snapshot load, and Startup
// have completed, so the store is ready before any route is mounted.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(
		appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure,
		appCfg.JWTKey, appCfg.JWTTTL, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Global auth middleware: resolves the session cookie or bearer
	// token into the request context for every route.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.Store, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Uploaded media with pre-compressed file support.
	r.Handle(appCfg.UploadURL+"/*", fileserver.Handler(appCfg.UploadURL, appCfg.UploadDir))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.Store, sessionMgr, loginfeature.Config{
		AdminPhones:       splitList(appCfg.AdminPhones),
		AdminEmails:       splitList(appCfg.AdminEmails),
		AdminPasswordHash: appCfg.AdminPasswordHash,
		DemoOTP:           appCfg.DemoOTP,
	}, logger)
	r.Mount("/api/auth", loginfeature.Routes(loginHandler, sessionMgr))

	// Groups, their message timelines, and typing indicators
	groupsHandler := groupsfeature.NewHandler(deps.Store, logger)
	r.Mount("/api/groups", groupsfeature.Routes(groupsHandler, sessionMgr))

	messagesHandler := messagesfeature.NewHandler(deps.Store, logger)
	r.Mount("/api/groups/{groupID}/messages", messagesfeature.GroupRoutes(messagesHandler, sessionMgr))
	r.Mount("/api/messages", messagesfeature.Routes(messagesHandler, sessionMgr))

	// Roster and approvals
	studentsHandler := studentsfeature.NewHandler(deps.Store, logger)
	r.Mount("/api/students", studentsfeature.Routes(studentsHandler, sessionMgr))

	// Fees and the institute bank account
	feesHandler := feesfeature.NewHandler(deps.Store, logger)
	r.Mount("/api/fees", feesfeature.Routes(feesHandler, sessionMgr))

	// Live lectures
	liveHandler := livefeature.NewHandler(deps.Store, logger)
	r.Mount("/api/live", livefeature.Routes(liveHandler, sessionMgr))

	// Device profile, viewer role, theme
	profileHandler := profilefeature.NewHandler(deps.Store, logger)
	r.Mount("/api/profile", profilefeature.Routes(profileHandler, sessionMgr))

	// Media uploads
	uploadsHandler := uploadsfeature.NewHandler(appCfg.UploadDir, appCfg.UploadURL, logger)
	r.Mount("/api/uploads", uploadsfeature.Routes(uploadsHandler, sessionMgr))

	return r, nil
}

// splitList parses a comma-separated config value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

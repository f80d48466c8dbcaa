package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mcqtrainer/internal/answer"
	"github.com/abhisek/mcqtrainer/internal/app"
	"github.com/abhisek/mcqtrainer/internal/selection"
	"github.com/abhisek/mcqtrainer/internal/session"
)

// runApp opens the store, builds dependencies, and launches the TUI. A
// non-nil req starts that quiz right away.
func runApp(cmd *cobra.Command, req *selection.Request, title string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.seed(cmd); err != nil {
		return err
	}

	writeMode, err := session.ParseWriteMode(e.cfg.WriteMode)
	if err != nil {
		return fmt.Errorf("write mode: %w", err)
	}

	selector := selection.New(e.store, selection.WithDefaultThreshold(e.cfg.WeakThreshold))
	if req != nil && req.Threshold == 0 {
		req.Threshold = e.cfg.WeakThreshold
	}

	e.logger.Info("starting ui", "write_mode", writeMode.String(), "threshold", e.cfg.WeakThreshold)
	return app.Run(app.Options{
		Bank:       e.store,
		Loader:     selector,
		Recorder:   answer.NewRecorder(e.store, e.logger),
		WriteMode:  writeMode,
		Threshold:  e.cfg.WeakThreshold,
		ConfigPath: e.configPath,
		Logger:     e.logger,
		Quiz:       req,
		QuizTitle:  title,
	})
}

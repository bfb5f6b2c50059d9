package ai

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"rps-game/game"
)

// TrainingSource loads every persisted history record, oldest first.
// Implemented by the storage package.
type TrainingSource interface {
	Load(ctx context.Context) ([]game.HistoryRecord, error)
}

// Adaptive predicts the human's next weapon with a decision tree trained on
// the whole history log, then plays the weapon that beats the prediction.
//
// The tree is retrained from the log on every call, so a prediction depends
// only on what the log holds at that moment.
type Adaptive struct {
	source    TrainingSource
	heuristic *Heuristic

	// DOTPath, when set, receives a Graphviz dump of each freshly trained tree.
	DOTPath string
}

// NewAdaptive returns an Adaptive strategy that falls back to heuristic when
// there is no usable history.
func NewAdaptive(source TrainingSource, heuristic *Heuristic) *Adaptive {
	return &Adaptive{source: source, heuristic: heuristic}
}

// Choose falls back to the heuristic strategy until the in-memory record holds
// two rounds, and also whenever the log yields no training rows.
func (a *Adaptive) Choose(ctx context.Context, record game.HistoryRecord) (game.Weapon, error) {
	if !record.Complete() {
		slog.Debug("history incomplete, playing heuristic", "tag", "ai")
		return a.heuristic.Choose(ctx, record)
	}
	query, err := featuresOf(record.Current.Round)
	if err != nil {
		slog.Warn("cannot encode latest round, playing heuristic", "tag", "ai", "err", err)
		return a.heuristic.Choose(ctx, record)
	}

	tree, err := a.train(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		slog.Info("no model, playing heuristic", "tag", "ai", "reason", err)
		return a.heuristic.Choose(ctx, record)
	}

	predicted, ok := decodeWeapon(tree.Predict(query))
	if !ok {
		return a.heuristic.Choose(ctx, record)
	}
	w := game.Beats(predicted)
	slog.Debug("playing tree", "tag", "ai", "predicted_human", predicted.String(), "weapon", w.String())
	return w, nil
}

// train loads the log and fits a fresh tree. Records that cannot be turned
// into a training row are skipped and logged.
func (a *Adaptive) train(ctx context.Context) (*Tree, error) {
	records, err := a.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load training data: %w", err)
	}
	samples := make([]Sample, 0, len(records))
	for i, r := range records {
		s, err := sampleOf(r)
		if err != nil {
			slog.Warn("skipping training record", "tag", "ai", "index", i, "err", err)
			continue
		}
		samples = append(samples, s)
	}
	tree, err := TrainTree(samples, len(weaponClasses))
	if err != nil {
		return nil, err
	}
	slog.Debug("trained tree", "tag", "ai", "samples", len(samples), "depth", tree.Depth())
	if a.DOTPath != "" {
		a.writeDOT(tree)
	}
	return tree, nil
}

func (a *Adaptive) writeDOT(tree *Tree) {
	f, err := os.Create(a.DOTPath)
	if err != nil {
		slog.Warn("cannot write tree dump", "tag", "ai", "path", a.DOTPath, "err", err)
		return
	}
	if err := tree.WriteDOT(f, featureNames[:], classNames()); err != nil {
		slog.Warn("cannot write tree dump", "tag", "ai", "path", a.DOTPath, "err", err)
	}
	if err := f.Close(); err != nil {
		slog.Warn("cannot close tree dump", "tag", "ai", "path", a.DOTPath, "err", err)
	}
}

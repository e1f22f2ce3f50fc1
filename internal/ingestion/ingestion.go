// Package ingestion loads the three simulation inputs (trades, rates, FX)
// from CSV into typed in-memory tables. It is the only place that touches
// files; everything downstream operates on immutable tables.
package ingestion

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/marginlab/ccpmargin/internal/domain/models"
	"github.com/marginlab/ccpmargin/internal/logger"
)

// Inputs is the fully loaded, validated input bundle for one run.
type Inputs struct {
	Trades []models.Trade
	Rates  *models.MarketTable
	FX     *models.MarketTable
}

// LoadFiles reads the three input CSVs concurrently. The files are
// independent, so they parse on an errgroup; the first error cancels the
// siblings and fails the load.
func LoadFiles(ctx context.Context, tradesPath, ratesPath, fxPath string) (*Inputs, error) {
	start := time.Now()
	in := &Inputs{}

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		f, err := os.Open(tradesPath)
		if err != nil {
			return fmt.Errorf("open trades: %w", err)
		}
		defer func() { _ = f.Close() }()
		trades, err := ReadTrades(f)
		if err != nil {
			return fmt.Errorf("trades file %s: %w", tradesPath, err)
		}
		in.Trades = trades
		return nil
	})

	g.Go(func() error {
		f, err := os.Open(ratesPath)
		if err != nil {
			return fmt.Errorf("open rates: %w", err)
		}
		defer func() { _ = f.Close() }()
		rates, err := ReadRates(f)
		if err != nil {
			return fmt.Errorf("rates file %s: %w", ratesPath, err)
		}
		in.Rates = rates
		return nil
	})

	g.Go(func() error {
		f, err := os.Open(fxPath)
		if err != nil {
			return fmt.Errorf("open fx: %w", err)
		}
		defer func() { _ = f.Close() }()
		fx, err := ReadFX(f)
		if err != nil {
			return fmt.Errorf("fx file %s: %w", fxPath, err)
		}
		in.FX = fx
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.L().Info().
		Int("trades", len(in.Trades)).
		Int("rate_dates", in.Rates.Len()).
		Int("fx_dates", in.FX.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("inputs loaded")

	return in, nil
}

// LoadBase64 decodes base64-encoded CSV payloads (the API upload contract)
// into the same input bundle as LoadFiles.
func LoadBase64(tradesB64, ratesB64, fxB64 string) (*Inputs, error) {
	decode := func(label, b64 string) ([]byte, error) {
		raw, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", label, err)
		}
		return raw, nil
	}

	tradesRaw, err := decode("trades", tradesB64)
	if err != nil {
		return nil, err
	}
	ratesRaw, err := decode("rates", ratesB64)
	if err != nil {
		return nil, err
	}
	fxRaw, err := decode("fx", fxB64)
	if err != nil {
		return nil, err
	}

	trades, err := ReadTrades(bytes.NewReader(tradesRaw))
	if err != nil {
		return nil, fmt.Errorf("trades payload: %w", err)
	}
	rates, err := ReadRates(bytes.NewReader(ratesRaw))
	if err != nil {
		return nil, fmt.Errorf("rates payload: %w", err)
	}
	fx, err := ReadFX(bytes.NewReader(fxRaw))
	if err != nil {
		return nil, fmt.Errorf("fx payload: %w", err)
	}

	return &Inputs{Trades: trades, Rates: rates, FX: fx}, nil
}

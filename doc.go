// Package snowball computes comparable performance metrics for a personal
// portfolio split across several independently sampled accounts (retirement,
// brokerage, crypto and cash).
//
// The core functionalities include:
//   - Time-series merging: monthly snapshots of every account are joined on
//     the union of their months, forward-filling silent accounts.
//   - Snowball reconciliation: the capital the owner deposited from outside
//     is separated from realized gains and dividends that were reinvested.
//   - Returns: time-weighted (chain-linked) and money-weighted returns, CAGR,
//     trailing twelve months and year-to-date figures.
//   - Inflation: chain-linked real values from a month-over-month CPI table.
//   - Calendar views: monthly return grid with quarterly and yearly geometric
//     rollups, seasonality, drawdowns and forward projections.
//   - Price resolution: live, fallback and previous-session quotes are
//     combined to revalue open positions once per session.
//
// Every function of the engine is a pure transformation of its inputs. Parsing,
// price fetching and rendering live in the ingest, pricefeed and renderer
// packages.
package snowball

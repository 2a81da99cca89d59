// Copyright 2026 The DeepBrainChain Authors
// This file is part of the DeepBrainChain library.
//
// The DeepBrainChain library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The DeepBrainChain library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the DeepBrainChain library. If not, see <http://www.gnu.org/licenses/>.

package oracle

import (
	"math/big"
	"time"

	"github.com/go-redis/redis/v7"

	dbclog "github.com/DeepBrainChain/DeepBrainChain-3.0/log"
)

var logger = dbclog.NewModuleLogger(dbclog.Oracle)

const redisPriceKey = "dbc3:oracle:dbc_price"

// CachedOracle wraps an upstream PriceOracle with a short-TTL redis
// cache, so a busy node doesn't re-query the upstream price provider
// contract on every single create_task_order call within the same
// block window. On a cache miss or redis error it always falls back to
// querying upstream directly — redis is a latency optimization here,
// never a source of truth.
type CachedOracle struct {
	upstream PriceOracle
	rdb      *redis.Client
	ttl      time.Duration
}

func NewCachedOracle(upstream PriceOracle, addr string, ttl time.Duration) *CachedOracle {
	return &CachedOracle{
		upstream: upstream,
		rdb:      redis.NewClient(&redis.Options{Addr: addr}),
		ttl:      ttl,
	}
}

func (c *CachedOracle) DBCPrice() (*big.Int, bool) {
	if s, err := c.rdb.Get(redisPriceKey).Result(); err == nil {
		if v, ok := new(big.Int).SetString(s, 10); ok {
			return v, true
		}
	}
	price, ok := c.upstream.DBCPrice()
	if !ok {
		return nil, false
	}
	if err := c.rdb.Set(redisPriceKey, price.String(), c.ttl).Err(); err != nil {
		logger.Warn("oracle price cache write failed", "err", err)
	}
	return price, true
}

func (c *CachedOracle) DBCForUSD(usdValue *big.Int) (*big.Int, bool) {
	price, ok := c.DBCPrice()
	if !ok {
		return nil, false
	}
	product := new(big.Int).Mul(usdValue, price)
	return new(big.Int).Quo(product, big.NewInt(Scale)), true
}

package main

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	cache "github.com/krisalay/ttl-cache"
	"github.com/krisalay/ttl-cache/types"
)

// ================= BENCHMARK =================

func main() {
	ctx := context.Background()

	// ---------------- Cache Config ----------------
	const (
		shards      = 8
		preloadKeys = 100000
		coldKeys    = 1000
		goroutines  = 200
		opsPerG     = 5000
	)

	fmt.Println("\n================ CACHE LOAD BENCHMARK =================")
	fmt.Println("CONFIG")
	fmt.Println("---------------------------------")
	fmt.Println("Shards       :", shards)
	fmt.Println("Policy       :", types.Renew)
	fmt.Println("Preload Keys :", preloadKeys)
	fmt.Println("Cold Keys    :", coldKeys)
	fmt.Println("Goroutines   :", goroutines)
	fmt.Println("Ops/Goroutine:", opsPerG)
	fmt.Println("---------------------------------")

	c, err := cache.New(
		cache.WithName("benchmark"),
		cache.WithPolicy(types.Renew),
		cache.WithTTL(time.Minute),
		cache.WithShards(shards),
	)
	if err != nil {
		panic(err)
	}
	defer c.Close()

	// ---------------- Preload Cache ----------------
	fmt.Println("Preloading cache...")
	for i := 0; i < preloadKeys; i++ {
		c.Set(fmt.Sprintf("key-%d", i), i)
	}
	fmt.Println("Preload complete.")

	// ---------------- Load Test ----------------
	// Every goroutine mixes hits on preloaded keys with populates of cold keys, so
	// cold keys see heavy contention and exercise single-flight.
	fmt.Println("Running concurrency benchmark...")

	var populates atomic.Int64
	populate := func(context.Context) (any, error) {
		populates.Add(1)
		time.Sleep(time.Millisecond)
		return "cold", nil
	}

	start := time.Now()

	wg := sync.WaitGroup{}
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < opsPerG; j++ {
				if j%10 == 0 {
					c.Get(ctx, fmt.Sprintf("cold-%d", j%coldKeys), populate)
					continue
				}
				c.Get(ctx, fmt.Sprintf("key-%d", (id*opsPerG+j)%preloadKeys), nil)
			}
		}(i)
	}

	wg.Wait()

	duration := time.Since(start)
	totalOps := goroutines * opsPerG

	fmt.Println("\n================ RESULTS =================")
	fmt.Printf("Total Operations : %d\n", totalOps)
	fmt.Printf("Total Time       : %v\n", duration)
	fmt.Printf("Throughput       : %.2f ops/sec\n", float64(totalOps)/duration.Seconds())
	fmt.Printf("Populate Calls   : %d (cold keys: %d)\n", populates.Load(), coldKeys)
	fmt.Println("=========================================")
}

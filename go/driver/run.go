// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Fantom-foundation/chaintester/go/backend"
	cliUtils "github.com/Fantom-foundation/chaintester/go/driver/cli"
	"github.com/dsnet/golib/unitconv"
	"github.com/urfave/cli/v2"
)

var RunCmd = cliUtils.AddCommonFlags(cli.Command{
	Action: doRun,
	Name:   "run",
	Usage:  "Drive independent chains through random operations and check the backend laws",
	Flags: []cli.Flag{
		cliUtils.JobsFlag,
		cliUtils.SeedFlag,
		cliUtils.StepsFlag,
	},
})

func doRun(context *cli.Context) error {
	jobCount := cliUtils.JobsFlag.Fetch(context)
	seed := cliUtils.SeedFlag.Fetch(context)
	steps := cliUtils.StepsFlag.Fetch(context)

	fmt.Printf("Starting %d jobs with %d steps each, seed %d ...\n", jobCount, steps, seed)

	// Run a progress printer in the background.
	counter := atomic.Uint64{}
	stopProgressPrinter := make(chan struct{})
	var progressGroup sync.WaitGroup
	progressGroup.Add(1)
	go func() {
		defer progressGroup.Done()
		start := time.Now()
		last := uint64(0)
		for {
			select {
			case <-stopProgressPrinter:
				return
			case <-time.After(5 * time.Second):
				relativeTime := time.Since(start)
				current := counter.Load()
				diff := current - last
				last = current
				rate := float64(diff) / 5
				fmt.Printf(
					"[t=%4d:%02d] - Processing ~%s steps per second, total %d\n",
					int(relativeTime.Seconds())/60, int(relativeTime.Seconds())%60,
					unitconv.FormatPrefix(rate, unitconv.SI, 0), current,
				)
			}
		}
	}()

	issues := &issuesCollector{}

	// Every job owns its chain; jobs do not share any state.
	var wg sync.WaitGroup
	wg.Add(jobCount)
	for i := 0; i < jobCount; i++ {
		go func() {
			defer wg.Done()
			jobSeed := seed + uint64(i)
			b, err := backend.NewDefault()
			if err != nil {
				issues.AddIssue(jobSeed, err)
				return
			}
			err = newWorkload(b, jobSeed).run(steps, func() { counter.Add(1) })
			if err != nil {
				issues.AddIssue(jobSeed, err)
			}
		}()
	}

	wg.Wait()
	close(stopProgressPrinter)
	progressGroup.Wait()

	// Summarize the result.
	fmt.Printf("Workload completed, %d steps executed\n", counter.Load())
	if issues.NumIssues() == 0 {
		fmt.Printf("All laws hold!\n")
		return nil
	}
	for _, issue := range issues.issues {
		fmt.Printf("----------------------------\n")
		fmt.Printf("seed %d: %v\n", issue.seed, issue.err)
	}
	return fmt.Errorf("found %d issues", issues.NumIssues())
}

type issue struct {
	seed uint64
	err  error
}

type issuesCollector struct {
	issues []issue
	mu     sync.Mutex
}

func (c *issuesCollector) AddIssue(seed uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issues = append(c.issues, issue{seed, err})
}

func (c *issuesCollector) NumIssues() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.issues)
}

// Copyright 2024 VecKit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mpool

import (
	"encoding/json"
)

type poolUsage struct {
	Name          string `json:"name"`
	Cap           int64  `json:"cap"`
	CurrBytes     int64  `json:"curr_bytes"`
	HighWaterMark int64  `json:"high_water_mark"`
	NumAlloc      int64  `json:"num_alloc"`
	NumFree       int64  `json:"num_free"`
	NumGoAlloc    int64  `json:"num_go_alloc"`
	NumMmapAlloc  int64  `json:"num_mmap_alloc"`
}

func (mp *MPool) usage() poolUsage {
	return poolUsage{
		Name:          mp.name,
		Cap:           mp.cap,
		CurrBytes:     mp.stats.NumCurrBytes.Load(),
		HighWaterMark: mp.stats.HighWaterMark.Load(),
		NumAlloc:      mp.stats.NumAlloc.Load(),
		NumFree:       mp.stats.NumFree.Load(),
		NumGoAlloc:    mp.stats.NumGoAlloc.Load(),
		NumMmapAlloc:  mp.stats.NumMmapAlloc.Load(),
	}
}

// ReportMemUsage renders pool accounting as json.  Empty name reports
// every registered pool.
func ReportMemUsage(name string) string {
	var us []poolUsage
	if name != "" {
		if v, ok := pools.Load(name); ok {
			us = append(us, v.(*MPool).usage())
		}
	} else {
		pools.Range(func(_, v any) bool {
			us = append(us, v.(*MPool).usage())
			return true
		})
	}
	b, err := json.Marshal(us)
	if err != nil {
		return "[]"
	}
	return string(b)
}

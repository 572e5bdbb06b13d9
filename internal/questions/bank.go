// Package questions holds the fixed question material: the technical bank
// served by the reference backend, the HR lists, and the client-side
// fallbacks used when generation fails.
package questions

import "strings"

// Item is one canned question.
type Item struct {
	Text       string
	Category   string
	Difficulty string
	HintPoints []string
	Purpose    string
}

// HRTopics are recorded on every HR session.
var HRTopics = []string{"HR", "Behavioral", "Career Goals", "Company Culture"}

// Technical topics known to the bank, in display order.
var Topics = []string{
	"Data Structures",
	"Algorithms",
	"System Design",
	"Databases",
	"Operating Systems",
	"Networking",
}

// technical is keyed by topic then difficulty.
var technical = map[string]map[string][]Item{
	"Data Structures": {
		"easy": {
			{Text: "What is the difference between an array and a linked list?", HintPoints: []string{"memory layout", "access cost", "insertion cost"}},
			{Text: "How does a stack differ from a queue? Give a use for each.", HintPoints: []string{"LIFO vs FIFO", "call stack", "task scheduling"}},
		},
		"medium": {
			{Text: "How does a hash map handle collisions?", HintPoints: []string{"chaining", "open addressing", "load factor and resizing"}},
			{Text: "When would you pick a balanced binary search tree over a hash map?", HintPoints: []string{"ordered iteration", "range queries", "worst-case bounds"}},
		},
		"hard": {
			{Text: "Design an LRU cache with O(1) get and put.", HintPoints: []string{"hash map plus doubly linked list", "eviction order", "concurrency"}},
			{Text: "Explain how a skip list achieves expected logarithmic search.", HintPoints: []string{"probabilistic levels", "expected height", "comparison with balanced trees"}},
		},
	},
	"Algorithms": {
		"easy": {
			{Text: "Explain binary search and its preconditions.", HintPoints: []string{"sorted input", "midpoint", "O(log n)"}},
			{Text: "What is the time complexity of bubble sort and why is it rarely used?", HintPoints: []string{"O(n^2)", "adjacent swaps", "better alternatives"}},
		},
		"medium": {
			{Text: "Compare merge sort and quicksort.", HintPoints: []string{"stability", "worst case", "memory use"}},
			{Text: "How would you detect a cycle in a directed graph?", HintPoints: []string{"DFS colouring", "topological sort", "complexity"}},
		},
		"hard": {
			{Text: "Explain Dijkstra's algorithm and when it fails.", HintPoints: []string{"priority queue", "negative edges", "Bellman-Ford"}},
			{Text: "How would you find the k most frequent items in a stream that does not fit in memory?", HintPoints: []string{"count-min sketch", "heavy hitters", "approximation error"}},
		},
	},
	"System Design": {
		"easy": {
			{Text: "What is a load balancer and why would you use one?", HintPoints: []string{"horizontal scaling", "health checks", "algorithms"}},
			{Text: "What is caching and where can it be applied in a web application?", HintPoints: []string{"browser", "CDN", "application cache"}},
		},
		"medium": {
			{Text: "Design a URL shortener.", HintPoints: []string{"ID generation", "storage", "redirect latency"}},
			{Text: "How would you design rate limiting for a public API?", HintPoints: []string{"token bucket", "per-client keys", "distributed counters"}},
		},
		"hard": {
			{Text: "Design a news feed for a social network with millions of users.", HintPoints: []string{"fan-out on write vs read", "ranking", "caching"}},
			{Text: "How would you build a globally distributed key-value store?", HintPoints: []string{"partitioning", "replication", "consistency trade-offs"}},
		},
	},
	"Databases": {
		"easy": {
			{Text: "What is a primary key and why is it needed?", HintPoints: []string{"uniqueness", "indexing", "relationships"}},
			{Text: "What is the difference between SQL and NoSQL databases?", HintPoints: []string{"schema", "scaling", "query model"}},
		},
		"medium": {
			{Text: "How do database indexes speed up queries, and what do they cost?", HintPoints: []string{"B-trees", "write amplification", "selectivity"}},
			{Text: "Explain the ACID properties.", HintPoints: []string{"atomicity", "isolation levels", "durability"}},
		},
		"hard": {
			{Text: "How does MVCC work and what anomalies can still occur?", HintPoints: []string{"snapshots", "write skew", "vacuuming"}},
			{Text: "How would you shard a relational database that has outgrown one node?", HintPoints: []string{"shard key", "cross-shard queries", "rebalancing"}},
		},
	},
	"Operating Systems": {
		"easy": {
			{Text: "What is the difference between a process and a thread?", HintPoints: []string{"address space", "scheduling", "communication"}},
			{Text: "What is virtual memory?", HintPoints: []string{"paging", "isolation", "swap"}},
		},
		"medium": {
			{Text: "What is a deadlock and how can it be prevented?", HintPoints: []string{"four conditions", "lock ordering", "timeouts"}},
			{Text: "How does a context switch work?", HintPoints: []string{"saved registers", "scheduler", "cost"}},
		},
		"hard": {
			{Text: "Explain how copy-on-write fork works.", HintPoints: []string{"page tables", "write faults", "memory savings"}},
			{Text: "Compare epoll, kqueue and select.", HintPoints: []string{"readiness model", "scalability", "edge vs level triggering"}},
		},
	},
	"Networking": {
		"easy": {
			{Text: "What happens when you type a URL into a browser?", HintPoints: []string{"DNS", "TCP and TLS handshake", "HTTP request"}},
			{Text: "What is the difference between TCP and UDP?", HintPoints: []string{"reliability", "ordering", "use cases"}},
		},
		"medium": {
			{Text: "How does TLS establish a secure connection?", HintPoints: []string{"certificates", "key exchange", "session keys"}},
			{Text: "Explain TCP congestion control.", HintPoints: []string{"slow start", "congestion window", "packet loss"}},
		},
		"hard": {
			{Text: "How does HTTP/2 multiplexing differ from HTTP/1.1 pipelining?", HintPoints: []string{"streams", "head-of-line blocking", "QUIC"}},
			{Text: "Design a service discovery mechanism for microservices.", HintPoints: []string{"registry", "health checking", "client vs server side"}},
		},
	},
}

// Technical returns the bank entries for topic and difficulty. An empty or
// unknown topic draws from every topic in order.
func Technical(topic, difficulty string) []Item {
	difficulty = strings.ToLower(difficulty)
	pick := func(t string) []Item {
		var out []Item
		for _, it := range technical[t][difficulty] {
			it.Category = t
			it.Difficulty = difficulty
			out = append(out, it)
		}
		return out
	}
	if _, ok := technical[topic]; ok {
		return pick(topic)
	}
	var out []Item
	for _, t := range Topics {
		out = append(out, pick(t)...)
	}
	return out
}

// HRFallback is served when no personalised HR list can be generated.
var HRFallback = []Item{
	{Text: "Can you walk me through your resume and highlight key experiences that make you a good fit for this role?", Category: "introduction", Purpose: "Assess communication skills and self-awareness", Difficulty: "medium"},
	{Text: "What do you know about our company and why do you want to work here?", Category: "company_knowledge", Purpose: "Evaluate research skills and genuine interest", Difficulty: "medium"},
	{Text: "Where do you see yourself in the next 5 years?", Category: "career_goals", Purpose: "Understand long-term career aspirations", Difficulty: "easy"},
	{Text: "Tell me about a time you faced a significant challenge and how you overcame it.", Category: "behavioral", Purpose: "Assess problem-solving and resilience", Difficulty: "medium"},
	{Text: "What achievement are you most proud of and why?", Category: "achievements", Purpose: "Understand values and motivation drivers", Difficulty: "medium"},
	{Text: "How do your extracurricular activities contribute to your professional development?", Category: "extracurricular", Purpose: "Assess transferable skills and work-life balance", Difficulty: "medium"},
	{Text: "Describe a situation where you had to take leadership responsibility. What did you learn?", Category: "behavioral", Purpose: "Evaluate leadership potential and learning ability", Difficulty: "hard"},
	{Text: "What motivates you to perform at your best?", Category: "behavioral", Purpose: "Understand intrinsic motivation factors", Difficulty: "easy"},
}

// HRCommon is used once every other HR question has been asked.
var HRCommon = []Item{
	{Text: "Tell me about yourself.", Category: "introduction", Purpose: "Ice breaker and overview of candidate", Difficulty: "easy"},
	{Text: "Why should we hire you?", Category: "self_promotion", Purpose: "Assess self-awareness and value proposition", Difficulty: "medium"},
	{Text: "What are your strengths and weaknesses?", Category: "self_awareness", Purpose: "Evaluate self-assessment and honesty", Difficulty: "medium"},
	{Text: "How do you handle pressure and tight deadlines?", Category: "behavioral", Purpose: "Assess stress management skills", Difficulty: "medium"},
	{Text: "What are your salary expectations?", Category: "compensation", Purpose: "Understand compensation alignment", Difficulty: "hard"},
}

// technicalFallback is shown by the client when the service cannot supply a
// technical question.
var technicalFallback = []Item{
	{Text: "Describe a project you are proud of and the main technical decisions behind it.", Category: "General", HintPoints: []string{"problem", "constraints", "trade-offs"}},
	{Text: "Explain a bug that was hard to track down and how you found it.", Category: "General", HintPoints: []string{"symptoms", "investigation", "fix and prevention"}},
	{Text: "How do you decide between two competing designs?", Category: "General", HintPoints: []string{"requirements", "cost of change", "measurement"}},
	{Text: "Walk through how you would test a new feature end to end.", Category: "General", HintPoints: []string{"unit tests", "integration tests", "monitoring"}},
	{Text: "What would you improve in the last codebase you worked on, and why?", Category: "General", HintPoints: []string{"pain points", "incremental plan", "risk"}},
}

// Fallback returns the fixed substitute for the given 1-based ordinal.
func Fallback(hr bool, ordinal int) Item {
	list := technicalFallback
	if hr {
		list = HRFallback
	}
	if ordinal < 1 {
		ordinal = 1
	}
	return list[(ordinal-1)%len(list)]
}

// Remaining filters out items whose text was already asked.
func Remaining(items []Item, previous []string) []Item {
	seen := make(map[string]bool, len(previous))
	for _, p := range previous {
		seen[strings.TrimSpace(p)] = true
	}
	var out []Item
	for _, it := range items {
		if !seen[it.Text] {
			out = append(out, it)
		}
	}
	return out
}

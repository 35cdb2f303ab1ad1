package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Answer check outcomes.
const (
	OutcomeCorrect   = "correct"
	OutcomeIncorrect = "incorrect"
	OutcomeNotFound  = "not_found"
)

// Metrics groups the gameplay counters exported on /metrics. A nil *Metrics is a no-op.
type Metrics struct {
	questionsServed *prometheus.CounterVec
	answersChecked  *prometheus.CounterVec
	sessionsCreated prometheus.Counter
	playersJoined   prometheus.Counter
}

// New registers the counters on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		questionsServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trivia",
			Name:      "questions_served_total",
			Help:      "Next-question lookups by result.",
		}, []string{"result"}),
		answersChecked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trivia",
			Name:      "answers_checked_total",
			Help:      "Answer checks by outcome.",
		}, []string{"outcome"}),
		sessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "trivia",
			Name:      "game_sessions_created_total",
			Help:      "Game rooms created.",
		}),
		playersJoined: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "trivia",
			Name:      "players_joined_total",
			Help:      "Players added to rooms, hosts included.",
		}),
	}
	reg.MustRegister(m.questionsServed, m.answersChecked, m.sessionsCreated, m.playersJoined)
	return m
}

func (m *Metrics) QuestionServed(found bool) {
	if m == nil {
		return
	}
	result := "empty"
	if found {
		result = "found"
	}
	m.questionsServed.WithLabelValues(result).Inc()
}

func (m *Metrics) AnswerChecked(outcome string) {
	if m == nil {
		return
	}
	m.answersChecked.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SessionCreated() {
	if m == nil {
		return
	}
	m.sessionsCreated.Inc()
}

func (m *Metrics) PlayerJoined() {
	if m == nil {
		return
	}
	m.playersJoined.Inc()
}

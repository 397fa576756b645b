package searcher

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

const Win = 1.0   // Reward for winning outcome
const Loss = -Win // Reward for losing outcome

const MaxCutoff = 1000 // Rollout length when no cutoff is given

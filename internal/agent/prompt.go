package agent

// RouterPromptTemplate is the router's system instruction. %s is the task
// title as written by the user.
const RouterPromptTemplate = `Role: Workflow Architect.
Task: Analyze the user request: "%s".
Goal: Decide the best strategy and write instructions for a subordinate worker.

Categories:
- SUMMARY: For URLs, "read this", "paper on...", specific documents.
- BRAINSTORM: For "ideas for", "how to", vague concepts, creative needs.
- SKIP: For chores (buy milk, schedule meeting, email Bob).

Output JSON ONLY:
{
  "action": "EXECUTE" or "SKIP",
  "reasoning": "One sentence explaining why you chose this strategy.",
  "worker_role": "Role Name (e.g., Creative Strategist)",
  "worker_instructions": "Precise, step-by-step instructions for the worker to generate the content..."
}`

// RouterUserPrompt accompanies RouterPromptTemplate.
const RouterUserPrompt = "Classify this task."

// WorkerPromptTemplate wraps the router's worker instructions with the
// formatting rules the report renderer relies on.
const WorkerPromptTemplate = `%s

Additional Constraints:
1. Format using Markdown (bolding, lists, headers).
2. NO filler words. Be concise.
3. Include 3-5 Actionable Next Steps.
4. If providing links, use high-authority sources.`

// WorkerUserPromptTemplate carries the topic for the worker.
const WorkerUserPromptTemplate = `Topic: "%s"`

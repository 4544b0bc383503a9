package radiance

// LeaderStatsQuery computes, per 1000-slot window and leader, the median
// and count of the time between the first shred being received and the
// slot being completed, for each source on the day five days ago.
// Non-positive durations are dropped.
const LeaderStatsQuery = `
SELECT
    floor(slot, -3) as slotWindow,
    leader,
    median(diff) AS medianReplay,
    count() AS count
FROM
(
    WITH
        leader,
        minIf(timestamp, type = 'firstShredReceived') AS tsReceived,
        minIf(timestamp, type = 'completed') AS tsCompleted
    SELECT
        source,
        slot,
        leader,
        toUnixTimestamp64Milli(tsCompleted) - toUnixTimestamp64Milli(tsReceived) AS diff
    FROM slot_status
    WHERE toDate(timestamp) = today() - 5
    GROUP BY
        slot,
        leader,
        source
    HAVING diff > 0
)
GROUP BY slotWindow, leader
ORDER BY median(diff)`
